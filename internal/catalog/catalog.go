package catalog

import (
	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/dp"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/graphs"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/search"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/sorting"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/algorithms/trees"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/registry"
	"github.com/awmpietro/golang-algorithm-visualizer/internal/step"
)

func meta(id, name string, c registry.Category, v step.VisualizerType) registry.Metadata {
	return registry.Metadata{ID: id, Name: name, Category: c, VisualizerType: v}
}

// Entries returns the standard catalog in presentation order.
func Entries() []registry.Entry {
	return []registry.Entry{
		{
			Metadata: meta("bubble_sort", "Bubble Sort", registry.CategorySorting, step.Array),
			Family:   FamilySort,
			Bind:     SortFamily(func() Sorter { return sorting.NewBubble() }),
			Source:   sourceOf(sorting.Source, "bubble.go"),
		},
		{
			Metadata: meta("insertion_sort", "Insertion Sort", registry.CategorySorting, step.Array),
			Family:   FamilySort,
			Bind:     SortFamily(func() Sorter { return sorting.NewInsertion() }),
			Source:   sourceOf(sorting.Source, "insertion.go"),
		},
		{
			Metadata: meta("selection_sort", "Selection Sort", registry.CategorySorting, step.Array),
			Family:   FamilySort,
			Bind:     SortFamily(func() Sorter { return sorting.NewSelection() }),
			Source:   sourceOf(sorting.Source, "selection.go"),
		},
		{
			Metadata: meta("quick_sort", "Quick Sort", registry.CategorySorting, step.Array),
			Family:   FamilySort,
			Bind:     SortFamily(func() Sorter { return sorting.NewQuick() }),
			Source:   sourceOf(sorting.Source, "quick.go"),
		},
		{
			Metadata: meta("merge_sort", "Merge Sort", registry.CategorySorting, step.Array),
			Family:   FamilySort,
			Bind:     SortFamily(func() Sorter { return sorting.NewMerge() }),
			Source:   sourceOf(sorting.Source, "merge.go"),
		},
		{
			Metadata: meta("heap_sort", "Heap Sort", registry.CategorySorting, step.Array),
			Family:   FamilySort,
			Bind:     SortFamily(func() Sorter { return sorting.NewHeap() }),
			Source:   sourceOf(sorting.Source, "heap.go"),
		},
		{
			Metadata: meta("linear_search", "Linear Search", registry.CategorySearch, step.Array),
			Family:   FamilyArraySearch,
			Bind:     ArraySearchFamily(func() ArraySearcher { return search.NewLinear() }),
			Source:   sourceOf(search.Source, "linear.go"),
		},
		{
			Metadata: meta("binary_search", "Binary Search", registry.CategorySearch, step.Array),
			Family:   FamilyArraySearch,
			Bind:     ArraySearchFamily(func() ArraySearcher { return search.NewBinary() }),
			Source:   sourceOf(search.Source, "binary.go"),
		},
		{
			Metadata: meta("bfs", "Breadth-First Search", registry.CategoryGraphs, step.Graph),
			Family:   FamilyGraphSearch,
			Bind:     GraphSearchFamily(func() GraphSearcher { return graphs.NewBFS() }),
			Source:   sourceOf(graphs.Source, "bfs.go"),
		},
		{
			Metadata: meta("dfs", "Depth-First Search", registry.CategoryGraphs, step.Graph),
			Family:   FamilyGraphSearch,
			Bind:     GraphSearchFamily(func() GraphSearcher { return graphs.NewDFS() }),
			Source:   sourceOf(graphs.Source, "dfs.go"),
		},
		{
			Metadata: meta("dijkstra", "Dijkstra's Shortest Path", registry.CategoryGraphs, step.Graph),
			Family:   FamilyShortestPath,
			Bind:     ShortestPathFamily(func() PathFinder { return graphs.NewDijkstra() }),
			Source:   sourceOf(graphs.Source, "dijkstra.go"),
		},
		{
			Metadata: meta("knapsack", "0/1 Knapsack", registry.CategoryDynamicProgramming, step.DPTable),
			Family:   FamilyKnapsack,
			Bind:     KnapsackFamily(),
			Source:   sourceOf(dp.Source, "knapsack.go"),
		},
		{
			Metadata: meta("lcs", "Longest Common Subsequence", registry.CategoryDynamicProgramming, step.DPTable),
			Family:   FamilyLCS,
			Bind:     LCSFamily(),
			Source:   sourceOf(dp.Source, "lcs.go"),
		},
		{
			Metadata: meta("fibonacci", "Fibonacci (Memoized)", registry.CategoryDynamicProgramming, step.Array),
			Family:   FamilyFibonacci,
			Bind:     FibonacciFamily(),
			Source:   sourceOf(dp.Source, "fibonacci.go"),
		},
		{
			Metadata: meta("bst_insert", "BST Insert", registry.CategoryTrees, step.Tree),
			Family:   FamilyTreeInsert,
			Bind:     TreeInsertFamily(func() TreeBuilder { return trees.NewBST() }),
			Source:   sourceOf(trees.Source, "bst.go"),
		},
		{
			Metadata: meta("bst_search", "BST Search", registry.CategoryTrees, step.Tree),
			Family:   FamilyTreeSearch,
			Bind:     TreeSearchFamily(func() TreeSearcher { return trees.NewBSTSearch() }),
			Source:   sourceOf(trees.Source, "bst.go"),
		},
		{
			Metadata: meta("inorder_traversal", "In-order Traversal", registry.CategoryTrees, step.Tree),
			Family:   FamilyTreeTraversal,
			Bind:     TreeTraversalFamily(trees.InOrder),
			Source:   sourceOf(trees.Source, "traversal.go"),
		},
		{
			Metadata: meta("preorder_traversal", "Pre-order Traversal", registry.CategoryTrees, step.Tree),
			Family:   FamilyTreeTraversal,
			Bind:     TreeTraversalFamily(trees.PreOrder),
			Source:   sourceOf(trees.Source, "traversal.go"),
		},
		{
			Metadata: meta("postorder_traversal", "Post-order Traversal", registry.CategoryTrees, step.Tree),
			Family:   FamilyTreeTraversal,
			Bind:     TreeTraversalFamily(trees.PostOrder),
			Source:   sourceOf(trees.Source, "traversal.go"),
		},
	}
}

// Standard builds the registry every entrypoint serves.
func Standard() (*registry.Registry, error) {
	return registry.New(Entries()...)
}
