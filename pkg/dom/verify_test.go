package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/l3aro/go-dominance-query/internal/log"
)

func TestCompareTreesIdentical(t *testing.T) {
	fn := buildFunc(t, "identical",
		[]string{"entry", "a", "b", "exit"},
		[][2]string{{"entry", "a"}, {"entry", "b"}, {"a", "exit"}, {"b", "exit"}})

	subject := Analyze(fn, Options{}).DomTree
	reference := Analyze(fn, Options{}).DomTree

	assert.Empty(t, CompareTrees(subject, reference))
}

func TestCompareTreesSizeMismatch(t *testing.T) {
	fn := buildFunc(t, "size",
		[]string{"entry", "a", "b"},
		[][2]string{{"entry", "a"}, {"a", "b"}})

	subject := Analyze(fn, Options{}).DomTree

	reference := make(Tree)
	reference.insert(fn.BlockByName("entry"), fn.BlockByName("a"))

	diffs := CompareTrees(subject, reference)
	assert.NotEmpty(t, diffs)
	assert.Contains(t, diffs[0], "different size")
}

func TestCompareTreesMissingDominator(t *testing.T) {
	fn := buildFunc(t, "missing",
		[]string{"entry", "a", "b"},
		[][2]string{{"entry", "a"}, {"entry", "b"}})

	subject := make(Tree)
	subject.insert(fn.BlockByName("a"), fn.BlockByName("b"))

	reference := make(Tree)
	reference.insert(fn.BlockByName("entry"), fn.BlockByName("a"))

	diffs := CompareTrees(subject, reference)
	assert.Contains(t, diffs, "entry not found in subject")
}

func TestCompareTreesDifferentChildren(t *testing.T) {
	fn := buildFunc(t, "children",
		[]string{"entry", "a", "b"},
		[][2]string{{"entry", "a"}, {"entry", "b"}})

	subject := make(Tree)
	subject.insert(fn.BlockByName("entry"), fn.BlockByName("a"))

	reference := make(Tree)
	reference.insert(fn.BlockByName("entry"), fn.BlockByName("a"))
	reference.insert(fn.BlockByName("entry"), fn.BlockByName("b"))

	diffs := CompareTrees(subject, reference)
	assert.Contains(t, diffs, "entry's children are different")
}

func TestMustMatchAbortsOnMismatch(t *testing.T) {
	fn := buildFunc(t, "abort",
		[]string{"entry", "a"},
		[][2]string{{"entry", "a"}})

	subject := Analyze(fn, Options{}).DomTree
	reference := make(Tree)

	exited := false
	restore := exitProcess
	exitProcess = func() { exited = true }
	defer func() { exitProcess = restore }()

	MustMatch(log.Default(), "dominator", subject, reference)
	assert.True(t, exited, "mismatch must terminate the process")
}

func TestMustMatchPassesOnEqualTrees(t *testing.T) {
	fn := buildFunc(t, "pass",
		[]string{"entry", "a"},
		[][2]string{{"entry", "a"}})

	subject := Analyze(fn, Options{}).DomTree
	reference := Analyze(fn, Options{}).DomTree

	restore := exitProcess
	exitProcess = func() { t.Fatal("equal trees must not abort") }
	defer func() { exitProcess = restore }()

	MustMatch(log.Default(), "dominator", subject, reference)
}
