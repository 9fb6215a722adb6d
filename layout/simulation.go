// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout implements the force-directed layout engine that
// positions graph nodes in 3D space, and the fitter that scales a
// finished layout into a target viewing extent.
package layout

import (
	"sort"

	"cogentcore.org/core/math32"
	"cogentcore.org/lab/base/randx"

	"github.com/gravitree/forcegraph/graph"
)

// Standard force names understood by [Simulation.SetForce].
const (
	// Charge is an all-pairs repulsion (negative strength) or
	// attraction (positive strength) between nodes.
	Charge = "charge"

	// Link is a spring along each link pulling its endpoints
	// toward the rest length.
	Link = "link"

	// CenterX, CenterY, and CenterZ each pull nodes toward the
	// origin along one axis only, independently of the others.
	CenterX = "centerX"
	CenterY = "centerY"
	CenterZ = "centerZ"
)

// Force is one named force in a [Simulation]. A force with zero
// Strength and no Custom function contributes exactly nothing to a
// step.
type Force struct {
	// Strength scales the force. The sign convention follows the
	// force kind: negative Charge repels, positive Link and Center
	// strengths attract.
	Strength float32

	// RestLength is the natural length of the Link springs,
	// ignored by other forces.
	RestLength float32

	// Custom, if set, is called once per step after the built-in
	// force for this name, and may adjust node velocities
	// directly. Custom forces run in name order.
	Custom func(dt float32, nodes []*graph.Node)
}

// Simulation drives a force-directed layout over the nodes of a
// graph, mutating their Pos and Vel in place. It is not safe for
// concurrent use; the owning frame loop is the only caller.
type Simulation struct {
	// Forces maps force names to their definitions. Use
	// [Simulation.SetForce] for routine strength changes.
	Forces map[string]*Force

	// VelocityDecay is the fraction of velocity lost each step,
	// 0 to 1. Default 0.4.
	VelocityDecay float32 `default:"0.4"`

	// Tolerance is the per-step maximum node displacement below
	// which the layout counts as settling. Default 0.001.
	Tolerance float32 `default:"0.001"`

	// SettleSteps is how many consecutive settling steps are
	// required before the simulation stops. Default 10.
	SettleSteps int `default:"10"`

	// MinChargeDist clamps the distance used by the charge force
	// so near-coincident nodes do not explode. Default 1.
	MinChargeDist float32 `default:"1"`

	// OnConverged, if set, is called exactly once each time the
	// simulation transitions from running to stopped. Reheating
	// arms it again.
	OnConverged func()

	gr       *graph.Graph
	accel    []math32.Vector3
	running  bool
	signaled bool
	settled  int
	steps    int
	metric   float32

	bbox      math32.Box3
	bboxValid bool
}

// NewSimulation returns a simulation over the given graph with the
// standard forces installed at their default strengths: charge -30,
// link strength 1 with rest length 30, and all three centering
// forces disabled at 0. [Simulation.Init] must be called to place
// the nodes and start the run.
func NewSimulation(gr *graph.Graph) *Simulation {
	sm := &Simulation{
		gr:            gr,
		VelocityDecay: 0.4,
		Tolerance:     0.001,
		SettleSteps:   10,
		MinChargeDist: 1,
	}
	sm.Forces = map[string]*Force{
		Charge:  {Strength: -30},
		Link:    {Strength: 1, RestLength: 30},
		CenterX: {},
		CenterY: {},
		CenterZ: {},
	}
	return sm
}

// Graph returns the graph this simulation lays out.
func (sm *Simulation) Graph() *graph.Graph {
	return sm.gr
}

// SetForce sets the strength of the named force, creating it if it
// does not exist yet. Setting a strength to zero disables the force
// without removing it.
func (sm *Simulation) SetForce(name string, strength float32) {
	f := sm.Forces[name]
	if f == nil {
		f = &Force{}
		if name == Link {
			f.RestLength = 30
		}
		sm.Forces[name] = f
	}
	f.Strength = strength
}

// Force returns the named force, or nil.
func (sm *Simulation) Force(name string) *Force {
	return sm.Forces[name]
}

// Running reports whether the simulation is still iterating.
// It becomes false when the layout has settled and true again after
// [Simulation.Reheat] or [Simulation.Init].
func (sm *Simulation) Running() bool {
	return sm.running
}

// Steps returns the number of steps taken since the last Init.
func (sm *Simulation) Steps() int {
	return sm.steps
}

// Metric returns the maximum node displacement of the most recent
// step, the quantity compared against Tolerance.
func (sm *Simulation) Metric() float32 {
	return sm.metric
}

// Golden-angle constants for the initial node placement spiral.
const (
	initialRadius    = 10
	initialAngleRoll = math32.Pi * 0.76393202250021 // pi * (3 - sqrt 5)
	initialAngleYaw  = math32.Pi * 0.83800982104550 // pi * 20 / (9 + sqrt 221)
)

// initPos returns the deterministic spiral position for node index i,
// spreading nodes over a ball so no two start coincident.
func initPos(i int) math32.Vector3 {
	fi := float32(i)
	radius := initialRadius * math32.Cbrt(0.5+fi)
	sr, cr := math32.Sincos(fi * initialAngleRoll)
	sy, cy := math32.Sincos(fi * initialAngleYaw)
	return math32.Vec3(radius*sr*cy, radius*cr, radius*sr*sy)
}

// Init places all nodes on the initial spiral with a small seeded
// jitter, clears velocities, and starts the run. The same seed over
// the same graph reproduces the same layout.
func (sm *Simulation) Init(seed int64) {
	rnd := randx.NewSysRand(seed)
	for i, nd := range sm.gr.Nodes {
		nd.Pos = initPos(i)
		nd.Pos.X += (rnd.Float32() - 0.5) * 1e-2
		nd.Pos.Y += (rnd.Float32() - 0.5) * 1e-2
		nd.Pos.Z += (rnd.Float32() - 0.5) * 1e-2
		nd.Vel = math32.Vector3{}
	}
	if len(sm.accel) != len(sm.gr.Nodes) {
		sm.accel = make([]math32.Vector3, len(sm.gr.Nodes))
	}
	sm.steps = 0
	sm.metric = 0
	sm.bboxValid = false
	sm.Reheat()
}

// Reheat restarts a stopped simulation, arming OnConverged again.
func (sm *Simulation) Reheat() {
	sm.running = true
	sm.signaled = false
	sm.settled = 0
}

// Step advances the simulation by dt. It is a no-op once the layout
// has settled, until the next Reheat. Forces whose strength is zero
// contribute exactly zero impulse.
func (sm *Simulation) Step(dt float32) {
	if !sm.running || dt <= 0 {
		return
	}
	nodes := sm.gr.Nodes
	if len(sm.accel) != len(nodes) {
		sm.accel = make([]math32.Vector3, len(nodes))
	}
	for i := range sm.accel {
		sm.accel[i] = math32.Vector3{}
	}

	sm.applyCharge()
	sm.applyLinks()
	sm.applyCenters()

	damp := 1 - sm.VelocityDecay
	maxDisp := float32(0)
	for i, nd := range nodes {
		nd.Vel = nd.Vel.Add(sm.accel[i].MulScalar(dt)).MulScalar(damp)
		nd.Pos = nd.Pos.Add(nd.Vel.MulScalar(dt))
		if !finiteVector(nd.Pos) || !finiteVector(nd.Vel) {
			// Numeric blowup resets the node instead of spreading
			// NaN through the pair forces next step.
			nd.Pos = initPos(i)
			nd.Vel = math32.Vector3{}
			continue
		}
		disp := nd.Vel.Length() * dt
		if disp > maxDisp {
			maxDisp = disp
		}
	}
	sm.applyCustom(dt)

	sm.metric = maxDisp
	sm.steps++
	sm.bboxValid = false

	if maxDisp < sm.Tolerance {
		sm.settled++
	} else {
		sm.settled = 0
	}
	if sm.settled >= sm.SettleSteps {
		sm.running = false
		if !sm.signaled {
			sm.signaled = true
			if sm.OnConverged != nil {
				sm.OnConverged()
			}
		}
	}
}

func (sm *Simulation) applyCharge() {
	f := sm.Forces[Charge]
	if f == nil || f.Strength == 0 {
		return
	}
	nodes := sm.gr.Nodes
	minSq := sm.MinChargeDist * sm.MinChargeDist
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			d := nodes[i].Pos.Sub(nodes[j].Pos)
			dsq := d.LengthSquared()
			if dsq == 0 {
				d = math32.Vec3(sm.MinChargeDist, 0, 0)
				dsq = minSq
			} else if dsq < minSq {
				dsq = minSq
			}
			// Negative strength pushes the pair apart.
			a := d.MulScalar(-f.Strength / (dsq * math32.Sqrt(dsq)))
			sm.accel[i] = sm.accel[i].Add(a)
			sm.accel[j] = sm.accel[j].Sub(a)
		}
	}
}

func (sm *Simulation) applyLinks() {
	f := sm.Forces[Link]
	if f == nil || f.Strength == 0 {
		return
	}
	for _, lk := range sm.gr.Links {
		d := lk.Target.Pos.Sub(lk.Source.Pos)
		dist := d.Length()
		if dist == 0 {
			continue
		}
		// Positive when stretched past the rest length, pulling
		// the endpoints together.
		a := d.MulScalar(f.Strength * (dist - f.RestLength) / dist)
		sm.accel[lk.Source.Index] = sm.accel[lk.Source.Index].Add(a)
		sm.accel[lk.Target.Index] = sm.accel[lk.Target.Index].Sub(a)
	}
}

func (sm *Simulation) applyCenters() {
	sx := sm.strength(CenterX)
	sy := sm.strength(CenterY)
	sz := sm.strength(CenterZ)
	if sx == 0 && sy == 0 && sz == 0 {
		return
	}
	for i, nd := range sm.gr.Nodes {
		sm.accel[i].X -= sx * nd.Pos.X
		sm.accel[i].Y -= sy * nd.Pos.Y
		sm.accel[i].Z -= sz * nd.Pos.Z
	}
}

// applyCustom runs custom force functions in name order, so float
// accumulation stays reproducible across runs.
func (sm *Simulation) applyCustom(dt float32) {
	var names []string
	for name, f := range sm.Forces {
		if f.Custom != nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)
	for _, name := range names {
		sm.Forces[name].Custom(dt, sm.gr.Nodes)
	}
}

func (sm *Simulation) strength(name string) float32 {
	if f := sm.Forces[name]; f != nil {
		return f.Strength
	}
	return 0
}

// BoundingBox returns the axis-aligned box of all node positions.
// The box is cached between steps; it is empty for an empty graph.
func (sm *Simulation) BoundingBox() math32.Box3 {
	if sm.bboxValid {
		return sm.bbox
	}
	bb := math32.B3Empty()
	for _, nd := range sm.gr.Nodes {
		bb.ExpandByPoint(nd.Pos)
	}
	sm.bbox = bb
	sm.bboxValid = true
	return bb
}

func finiteVector(v math32.Vector3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
