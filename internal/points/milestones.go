package points

import (
	"fmt"
	"math"
)

// MilestoneMessage returns a celebration line for totals worth calling out:
// a fixed table of round numbers, then repeating round thresholds, then the
// mathematically interesting classes. Powers of two and Fibonacci numbers
// only count above 20 and primes only above 100, so small totals do not
// celebrate on nearly every award.
func MilestoneMessage(total int64) (string, bool) {
	if msg, ok := roundNumberMessage(total); ok {
		return msg, true
	}

	if total > 20 && isPowerOfTwo(total) {
		return fmt.Sprintf("💪 Power of two! %d is mathematically awesome and so are you! 💪", total), true
	}
	if total > 20 && isFibonacci(total) {
		return fmt.Sprintf("🌀 Fibonacci number! %d is mathematically awesome and so are you! 🌀", total), true
	}
	if total > 100 && isPrime(total) {
		return fmt.Sprintf("🔢 Sweet prime number! %d is mathematically awesome and so are you! 🔢", total), true
	}

	return "", false
}

func roundNumberMessage(total int64) (string, bool) {
	switch total {
	case 5:
		return "🌱 Great start! Five points! 🌱", true
	case 10:
		return "⭐ Nice! Ten points! ⭐", true
	case 25:
		return "🎈 Awesome! Twenty-five points! 🎈", true
	case 50:
		return "🔥 Fantastic! Fifty points! 🔥", true
	case 75:
		return "💫 Amazing! Seventy-five points! 💫", true
	case 100:
		return "🎊 OMGOMG century!! 🎊", true
	case 500:
		return "🌟 WOW! Half a thousand! 🌟", true
	case 1000:
		return "🚀 INCREDIBLE! One thousand points! 🚀", true
	case 2500:
		return "💎 AMAZING! Twenty-five hundred! 💎", true
	case 5000:
		return "🏆 LEGENDARY! Five thousand points! 🏆", true
	case 10000:
		return "🎆 EPIC! TEN THOUSAND POINTS! 🎆", true
	}

	if total >= 100 && total%1000 == 0 {
		return fmt.Sprintf("🎯 Woohoo! %d points! 🎯", total), true
	}
	if total >= 500 && total%500 == 0 {
		return fmt.Sprintf("✨ Fantastic! %d points! ✨", total), true
	}
	if total >= 100 && total%100 == 0 {
		return fmt.Sprintf("🎉 Nice! %d points! 🎉", total), true
	}
	return "", false
}

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := int64(3); i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func isPowerOfTwo(n int64) bool {
	return n >= 1 && n&(n-1) == 0
}

func isPerfectSquare(n int64) bool {
	if n < 0 {
		return false
	}
	root := intSqrt(n)
	return root*root == n
}

// A number n is Fibonacci exactly when 5n²+4 or 5n²-4 is a perfect square.
func isFibonacci(n int64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return isPerfectSquare(5*n*n+4) || isPerfectSquare(5*n*n-4)
}

// intSqrt is a floor integer square root with a correction step, so perfect
// squares near the float64 precision edge still classify exactly.
func intSqrt(n int64) int64 {
	if n < 0 {
		return 0
	}
	root := int64(math.Sqrt(float64(n)))
	for root > 0 && root*root > n {
		root--
	}
	for (root+1)*(root+1) <= n {
		root++
	}
	return root
}
