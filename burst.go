package evergreen

import "time"

var (
	burstGold  = MustHex("#FFD700")
	burstRed   = MustHex("#FF0000")
	burstPink  = MustHex("#FF69B4")
	burstGreen = MustHex("#00FF00")
)

// burstPlan is one celebratory burst scheduled for a state change.
type burstPlan struct {
	delay  time.Duration
	color  Color
	count  int
	spread float64
	z      float64
}

// transitionBursts returns the bursts fired when the display moves from one
// state to another.
func transitionBursts(from, to State) []burstPlan {
	switch {
	case from == StateTree && to == StateExplode:
		plans := make([]burstPlan, 3)
		for i := range plans {
			plans[i] = burstPlan{
				delay:  time.Duration(i) * 100 * time.Millisecond,
				color:  burstRed,
				count:  80,
				spread: 50,
				z:      defaultCameraZ - 20,
			}
		}
		return plans
	case to == StateHeart:
		return []burstPlan{{color: burstPink, count: 60, spread: 40, z: defaultCameraZ - 30}}
	case to == StatePhoto:
		return []burstPlan{{color: burstGold, count: 40, spread: 40, z: defaultCameraZ - 30}}
	case from == StateExplode && to == StateTree:
		return []burstPlan{{color: burstGreen, count: 50, spread: 40, z: defaultCameraZ - 30}}
	default:
		return []burstPlan{{color: burstGold, count: 50, spread: 40, z: defaultCameraZ - 30}}
	}
}

// fireTransitionBursts emits the bursts for from->to. Bursts with no delay
// fire immediately; the rest are queued on the scheduler.
func (e *Engine) fireTransitionBursts(from, to State) {
	for _, plan := range transitionBursts(from, to) {
		if plan.delay <= 0 {
			e.burst(plan)
			continue
		}
		e.sched.After(plan.delay, func() { e.burst(plan) })
	}
}

func (e *Engine) burst(plan burstPlan) {
	pos := Vec3{
		(e.rng.Float64() - 0.5) * plan.spread,
		(e.rng.Float64() - 0.5) * plan.spread,
		plan.z,
	}
	n := e.fireworks.Emit(pos, plan.color, plan.count)
	e.emit(Event{Type: EventBurst, Pos: pos, Color: plan.color, Count: n})
}
