package sim

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/riptide/components"
	"github.com/pthm-cable/riptide/fluid"
)

// TracerField maintains a fixed population of passive particles carried by
// the velocity field, drawn as short streaks to make the flow visible in
// any display mode.
type TracerField struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Tracer]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Tracer]
	rng    *rand.Rand

	w, h     int
	count    int
	maxAge   float32
	minSpeed float32
}

// NewTracerField spawns count tracers at random positions on a w×h grid.
func NewTracerField(w, h, count int, maxAge, minSpeed float32, seed int64) *TracerField {
	world := ecs.NewWorld()

	t := &TracerField{
		world:    world,
		mapper:   ecs.NewMap3[components.Position, components.Velocity, components.Tracer](world),
		filter:   ecs.NewFilter3[components.Position, components.Velocity, components.Tracer](world),
		rng:      rand.New(rand.NewSource(seed)),
		w:        w,
		h:        h,
		count:    count,
		maxAge:   maxAge,
		minSpeed: minSpeed,
	}

	for i := 0; i < count; i++ {
		pos := components.Position{
			X: t.rng.Float32() * float32(w),
			Y: t.rng.Float32() * float32(h),
		}
		vel := components.Velocity{}
		// Stagger initial ages so respawns do not happen in lockstep.
		tr := components.Tracer{
			Age:    t.rng.Float32() * maxAge,
			MaxAge: maxAge,
		}
		t.mapper.NewEntity(&pos, &vel, &tr)
	}

	return t
}

// Count returns the tracer population size.
func (t *TracerField) Count() int { return t.count }

// Update advances every tracer by one frame: sample the fluid velocity at
// the tracer position, integrate, and respawn tracers that expired, left
// stagnant flow behind or drifted into a wall.
func (t *TracerField) Update(vel *fluid.VectorGrid, dt float32) {
	query := t.filter.Query()
	for query.Next() {
		pos, v, tr := query.Get()

		vx, vy := fluid.BilinearSampleVec(vel, pos.X, pos.Y)
		v.X, v.Y = vx, vy

		pos.X += vx * dt
		pos.Y += vy * dt
		tr.Age += dt / 60

		speedSq := vx*vx + vy*vy
		expired := tr.Age > tr.MaxAge
		stagnant := tr.Age > tr.MaxAge*0.25 && speedSq < t.minSpeed*t.minSpeed
		outside := pos.X < 0 || pos.X >= float32(t.w) || pos.Y < 0 || pos.Y >= float32(t.h)

		if expired || stagnant || outside {
			t.respawn(pos, v, tr)
		}
	}
}

// respawn resets a tracer in place rather than churning entities.
func (t *TracerField) respawn(pos *components.Position, v *components.Velocity, tr *components.Tracer) {
	pos.X = t.rng.Float32() * float32(t.w)
	pos.Y = t.rng.Float32() * float32(t.h)
	v.X, v.Y = 0, 0
	tr.Age = 0
	// Jitter lifetime so a burst of respawns spreads back out.
	tr.MaxAge = t.maxAge * (0.75 + t.rng.Float32()*0.5)
}

// Draw renders each tracer as a streak along its sampled velocity, scaled
// from grid to screen coordinates.
func (t *TracerField) Draw(scaleX, scaleY float32) {
	query := t.filter.Query()
	for query.Next() {
		pos, v, tr := query.Get()

		// Fade in over the first quarter of life, out over the last.
		life := tr.Age / tr.MaxAge
		alpha := float32(1)
		if life < 0.25 {
			alpha = life * 4
		} else if life > 0.75 {
			alpha = (1 - life) * 4
		}

		head := rl.Vector2{X: pos.X * scaleX, Y: pos.Y * scaleY}
		tail := rl.Vector2{
			X: (pos.X - v.X*3) * scaleX,
			Y: (pos.Y - v.Y*3) * scaleY,
		}
		c := rl.Color{R: 255, G: 255, B: 255, A: uint8(alpha * 140)}
		rl.DrawLineV(tail, head, c)
	}
}
