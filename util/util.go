package util

import (
	"golang.org/x/exp/constraints"
)

// Mod returns the non-negative residue of a modulo m, so Mod(-13, 12) == 11.
func Mod[A constraints.Integer](a A, m A) A {
	return ((a % m) + m) % m
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}
