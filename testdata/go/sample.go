package sample

import "fmt"

// Abs returns the absolute value of x.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// SumPositive adds up the positive values of xs.
func SumPositive(xs []int) int {
	total := 0
	for i := 0; i < len(xs); i++ {
		if xs[i] > 0 {
			total += xs[i]
		}
	}
	return total
}

// Describe classifies x and prints the result.
func Describe(x int) {
	label := ""
	if x < 0 {
		label = "negative"
	} else if x == 0 {
		label = "zero"
	} else {
		label = "positive"
	}
	fmt.Println(label)
}
