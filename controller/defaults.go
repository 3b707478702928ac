package controller

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/rogue/config"
)

// WalkParamsFromConfig returns Walk parameters with the configured defaults and no intent.
func WalkParamsFromConfig(cfg *config.Config) WalkParams {
	w := cfg.Walk
	return WalkParams{
		Up:             cfg.Derived.Up,
		Forward:        cfg.Derived.Forward,
		FloatingHeight: float32(w.FloatingHeight),
		FloatingMargin: float32(w.FloatingMargin),
		Spring: Spring{
			Strength: float32(w.SpringStrength),
			Damper:   float32(w.SpringDamper),
		},
		TurningAngVel: float32(w.TurningAngVel),
		AirborneGrace: config.Seconds(w.AirborneGrace),
	}
}

// JumpFromConfig returns a Jump with the configured takeoff velocity.
func JumpFromConfig(cfg *config.Config) *Jump {
	return NewJump(cfg.Derived.Up.Mul(float32(cfg.Jump.Velocity)), config.Seconds(cfg.Jump.TakeoffTimeout))
}

// DashFromConfig returns a Dash along dir with configured speed, duration and admission.
// An invalid admission value falls back to DashAlways; config.Validate rejects it earlier.
func DashFromConfig(cfg *config.Config, dir mgl32.Vec3) *Dash {
	admission, _ := ParseDashAdmission(cfg.Dash.Admission)
	return NewDash(dir, float32(cfg.Dash.Speed), config.Seconds(cfg.Dash.Duration), admission)
}

// AttackFromConfig returns an Attack with the configured timings and reach.
func AttackFromConfig(cfg *config.Config) *Attack {
	a := cfg.Attack
	mode, _ := ParseAttackMode(a.Mode)
	return &Attack{
		Mode:              mode,
		WindUp:            config.Seconds(a.WindUp),
		Backswing:         config.Seconds(a.Backswing),
		Range:             float32(a.Range),
		Power:             a.Power,
		Forward:           cfg.Derived.Forward,
		Up:                cfg.Derived.Up,
		HitboxHalfExtents: a.HitboxHalfExtents.V(),
		HitboxForward:     float32(a.HitboxForward),
		HitboxUp:          float32(a.HitboxUp),
		HitboxLifetime:    config.Seconds(a.HitboxLifetime),
	}
}

// SensorFromConfig returns the configured proximity probe.
func SensorFromConfig(cfg *config.Config) ProximitySensor {
	s := cfg.Sensor
	var sensor ProximitySensor
	if s.Shape == config.SensorBox {
		sensor = NewBoxSensor(s.Direction.V(), s.HalfExtents.V(), float32(s.MaxDistance))
	} else {
		sensor = NewRaySensor(s.Direction.V(), float32(s.MaxDistance))
	}
	sensor.Origin = s.Origin.V()
	return sensor
}

// RegisterDefaults registers Walk, Jump, Dash and Attack built from cfg.
//
// Walk takes the intent velocity and facing. Dash bursts along the intent
// facing, or the intent velocity when no facing is given.
func RegisterDefaults(r *Registry, cfg *config.Config) {
	base := WalkParamsFromConfig(cfg)
	r.RegisterBasis(WalkName, func(in Intent) Basis {
		p := base
		p.Velocity = in.Velocity
		p.Facing = in.Facing
		return NewWalk(p)
	})
	r.RegisterAction(JumpName, func(Intent) Action {
		return JumpFromConfig(cfg)
	})
	r.RegisterAction(DashName, func(in Intent) Action {
		dir := in.Facing
		if isZero(dir) {
			dir = RejectAxis(in.Velocity, cfg.Derived.Up)
		}
		return DashFromConfig(cfg, dir)
	})
	r.RegisterAction(AttackName, func(Intent) Action {
		return AttackFromConfig(cfg)
	})
}
