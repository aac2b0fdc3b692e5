// This file contains thin wrappers around the graph module
// for recording the course of a knockout stage.
package core

import (
	"iter"

	"github.com/dominikbraun/graph"
)

var nodeId int = 0

func NextNodeId() int {
	id := nodeId
	nodeId += 1
	return id
}

type GraphNode interface {
	// A unique ID that is used as the node hash
	Id() int
}

func getNodeId[T GraphNode](node T) int {
	return node.Id()
}

type DependencyGraph[T GraphNode] struct {
	graph.Graph[int, T]
	adjacencyMap   map[int]map[int]graph.Edge[int]
	predecessorMap map[int]map[int]graph.Edge[int]
}

func (g *DependencyGraph[T]) AddEdge(source, target T) error {
	err := g.Graph.AddEdge(source.Id(), target.Id())
	return err
}

func (g *DependencyGraph[T]) BreadthSearchIter(start T) iter.Seq2[T, int] {
	iterator := func(yield func(v T, depth int) bool) {
		visitor := func(key, depth int) bool {
			v, _ := g.Vertex(key)
			return !yield(v, depth)
		}
		graph.BFSWithDepth(g.Graph, start.Id(), visitor)
	}
	return iterator
}

// Returns the nodes that are on the outgoing edges of the given
// source node (the dependants).
func (g *DependencyGraph[T]) GetDependants(source T) []T {
	if g.adjacencyMap == nil {
		// The graph does not change after the knockout
		// stage was played so the map is stored on the first call
		g.adjacencyMap, _ = g.Graph.AdjacencyMap()
	}
	return g.vertices(g.adjacencyMap[source.Id()])
}

// Returns the nodes that are on the incoming edges of the given
// target node (the dependencies).
func (g *DependencyGraph[T]) GetDependencies(target T) []T {
	if g.predecessorMap == nil {
		g.predecessorMap, _ = g.Graph.PredecessorMap()
	}
	return g.vertices(g.predecessorMap[target.Id()])
}

func (g *DependencyGraph[T]) vertices(edges map[int]graph.Edge[int]) []T {
	vertices := make([]T, 0, len(edges))
	for k := range edges {
		v, _ := g.Vertex(k)
		vertices = append(vertices, v)
	}
	return vertices
}

// The EliminationGraph has all matches of a knockout stage as
// its nodes. An edge leads from a match to the match that its
// winner plays next.
type EliminationGraph struct {
	DependencyGraph[*Match]
}

func NewEliminationGraph() *EliminationGraph {
	graph := DependencyGraph[*Match]{
		Graph: graph.New(getNodeId[*Match], graph.Directed(), graph.Acyclic()),
	}
	eliminationGraph := EliminationGraph{DependencyGraph: graph}
	return &eliminationGraph
}
