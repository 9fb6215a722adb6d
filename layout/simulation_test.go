// Copyright (c) 2026, The Gravitree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitree/forcegraph/graph"
)

const testDt = float32(1.0 / 60)

// testGraph builds a graph of n nodes with the given index-pair links.
func testGraph(t *testing.T, n int, links ...[2]int) *graph.Graph {
	t.Helper()
	doc := &graph.Document{}
	for i := 0; i < n; i++ {
		doc.Nodes = append(doc.Nodes, map[string]any{"id": float64(i)})
	}
	for _, lk := range links {
		doc.Links = append(doc.Links, map[string]any{
			"source": float64(lk[0]), "target": float64(lk[1]),
		})
	}
	g, err := graph.Build(doc, nil)
	require.NoError(t, err)
	return g
}

func positions(g *graph.Graph) []math32.Vector3 {
	ps := make([]math32.Vector3, len(g.Nodes))
	for i, nd := range g.Nodes {
		ps[i] = nd.Pos
	}
	return ps
}

func TestInitDeterministic(t *testing.T) {
	g1 := testGraph(t, 5, [2]int{0, 1})
	g2 := testGraph(t, 5, [2]int{0, 1})
	NewSimulation(g1).Init(42)
	NewSimulation(g2).Init(42)
	assert.Equal(t, positions(g1), positions(g2))

	g3 := testGraph(t, 5, [2]int{0, 1})
	NewSimulation(g3).Init(43)
	assert.NotEqual(t, positions(g1), positions(g3))
}

func TestInitSpread(t *testing.T) {
	g := testGraph(t, 20)
	NewSimulation(g).Init(1)
	for i, a := range g.Nodes {
		for _, b := range g.Nodes[i+1:] {
			assert.Greater(t, a.Pos.DistanceTo(b.Pos), float32(0.1))
		}
	}
}

func TestZeroForcesZeroImpulse(t *testing.T) {
	g := testGraph(t, 4, [2]int{0, 1}, [2]int{1, 2})
	sm := NewSimulation(g)
	sm.Init(7)
	for name := range sm.Forces {
		sm.SetForce(name, 0)
	}
	before := positions(g)
	sm.Step(testDt)
	assert.Equal(t, before, positions(g), "zero-strength forces must not move anything")
}

func TestChargeRepulsion(t *testing.T) {
	g := testGraph(t, 2)
	sm := NewSimulation(g)
	sm.Init(1)
	sm.SetForce(Link, 0)
	g.Nodes[0].Pos = math32.Vec3(-1, 0, 0)
	g.Nodes[1].Pos = math32.Vec3(1, 0, 0)
	g.Nodes[0].Vel = math32.Vector3{}
	g.Nodes[1].Vel = math32.Vector3{}

	start := g.Nodes[0].Pos.DistanceTo(g.Nodes[1].Pos)
	for i := 0; i < 30; i++ {
		sm.Step(testDt)
	}
	assert.Greater(t, g.Nodes[0].Pos.DistanceTo(g.Nodes[1].Pos), start)
}

func TestLinkSpring(t *testing.T) {
	g := testGraph(t, 2, [2]int{0, 1})
	sm := NewSimulation(g)
	sm.Init(1)
	sm.SetForce(Charge, 0)
	g.Nodes[0].Pos = math32.Vec3(-50, 0, 0)
	g.Nodes[1].Pos = math32.Vec3(50, 0, 0)
	g.Nodes[0].Vel = math32.Vector3{}
	g.Nodes[1].Vel = math32.Vector3{}

	for i := 0; i < 30; i++ {
		sm.Step(testDt)
	}
	dist := g.Nodes[0].Pos.DistanceTo(g.Nodes[1].Pos)
	assert.Less(t, dist, float32(100), "stretched spring pulls endpoints together")
}

func TestCenteringIsPerAxis(t *testing.T) {
	g := testGraph(t, 1)
	sm := NewSimulation(g)
	sm.Init(1)
	sm.SetForce(Charge, 0)
	sm.SetForce(CenterX, 0.5)
	g.Nodes[0].Pos = math32.Vec3(5, 2, -3)
	g.Nodes[0].Vel = math32.Vector3{}

	for i := 0; i < 60; i++ {
		sm.Step(testDt)
	}
	nd := g.Nodes[0]
	assert.Less(t, math32.Abs(nd.Pos.X), float32(5))
	assert.Equal(t, float32(2), nd.Pos.Y, "a disabled axis force applies no impulse on that axis")
	assert.Equal(t, float32(-3), nd.Pos.Z)
}

func TestConvergenceSignaledOnce(t *testing.T) {
	g := testGraph(t, 3, [2]int{0, 1}, [2]int{1, 2})
	sm := NewSimulation(g)
	converged := 0
	sm.OnConverged = func() { converged++ }
	sm.Init(11)

	for i := 0; i < 5000 && sm.Running(); i++ {
		sm.Step(testDt)
	}
	require.False(t, sm.Running(), "layout must settle")
	assert.Equal(t, 1, converged)

	// Further steps are no-ops and must not signal again.
	before := positions(g)
	for i := 0; i < 50; i++ {
		sm.Step(testDt)
	}
	assert.Equal(t, 1, converged)
	assert.Equal(t, before, positions(g))

	// Reheating arms the signal for exactly one more firing.
	sm.Reheat()
	assert.True(t, sm.Running())
	for i := 0; i < 5000 && sm.Running(); i++ {
		sm.Step(testDt)
	}
	require.False(t, sm.Running())
	assert.Equal(t, 2, converged)
}

func TestSetForceRetunesRun(t *testing.T) {
	g := testGraph(t, 2, [2]int{0, 1})
	sm := NewSimulation(g)
	sm.Init(3)
	sm.SetForce(Charge, -120)
	assert.Equal(t, float32(-120), sm.Force(Charge).Strength)
	sm.SetForce("flow", 2)
	require.NotNil(t, sm.Force("flow"), "unknown names create new forces")
	assert.Equal(t, float32(2), sm.Force("flow").Strength)
}

func TestCustomForce(t *testing.T) {
	g := testGraph(t, 2)
	sm := NewSimulation(g)
	sm.Init(5)
	for name := range sm.Forces {
		sm.SetForce(name, 0)
	}
	sm.Forces["drift"] = &Force{
		Custom: func(dt float32, nodes []*graph.Node) {
			for _, nd := range nodes {
				nd.Vel.X += dt
			}
		},
	}
	sm.Step(testDt)
	sm.Step(testDt)
	assert.Greater(t, g.Nodes[0].Vel.X, float32(0))
}

func TestBoundingBox(t *testing.T) {
	g := testGraph(t, 6, [2]int{0, 1})
	sm := NewSimulation(g)
	sm.Init(9)

	bb := sm.BoundingBox()
	require.False(t, bb.IsEmpty())
	for _, nd := range g.Nodes {
		assert.True(t, bb.ContainsPoint(nd.Pos))
	}
	assert.Equal(t, bb, sm.BoundingBox(), "cached between steps")

	sm.Step(testDt)
	bb2 := sm.BoundingBox()
	for _, nd := range g.Nodes {
		assert.True(t, bb2.ContainsPoint(nd.Pos))
	}
}

func TestBoundingBoxEmptyGraph(t *testing.T) {
	g := testGraph(t, 0)
	sm := NewSimulation(g)
	sm.Init(1)
	assert.True(t, sm.BoundingBox().IsEmpty())
	sm.Step(testDt) // must not panic on an empty graph
}

func TestNaNRecovery(t *testing.T) {
	g := testGraph(t, 2, [2]int{0, 1})
	sm := NewSimulation(g)
	sm.Init(2)
	g.Nodes[0].Pos.X = math32.NaN()
	sm.Step(testDt)
	for _, nd := range g.Nodes {
		assert.False(t, math32.IsNaN(nd.Pos.X))
		assert.False(t, math32.IsNaN(nd.Pos.Y))
		assert.False(t, math32.IsNaN(nd.Pos.Z))
	}
}
