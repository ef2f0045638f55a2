package sequence

import "github.com/vovakirdan/pattern-island/internal/pattern"

func init() {
	Register(Family{
		Category: pattern.CategoryNumber,
		Numeric:  true,
		Base: func(k *Kit, idx int) pattern.Item {
			return numberItem(idx + 1 + k.LevelInGroup*2)
		},
		Rules: map[pattern.Tier]Rule{
			pattern.TierBeginner: byIndex(mod(2),
				countByOne,
				skipByTwo,
			),
			pattern.TierIntermediate: byIndex(mod(3),
				countByThree,
				countByFive,
				doubling,
			),
			pattern.TierAdvanced: byIndex(mod(3),
				growingSteps,
				sumOfLastTwo,
				doublePlusOne,
			),
		},
	})
}

func mod(n int) func(int) int {
	return func(i int) int { return i % n }
}

func numberItem(v int) pattern.Item {
	return pattern.Item{Color: pattern.ColorOrange, Value: pattern.Num(v)}
}

// numbers turns four stimulus values and the next value into a puzzle.
func numbers(instruction string, next int, values ...int) Puzzle {
	seq := make([]pattern.Item, len(values))
	for i, v := range values {
		seq[i] = numberItem(v)
	}
	return Puzzle{Sequence: seq, Answer: numberItem(next), Instruction: instruction}
}

func arithmetic(start, step int) ([]int, int) {
	vals := make([]int, 4)
	for i := range vals {
		vals[i] = start + step*i
	}
	return vals, start + step*4
}

func countByOne(k *Kit) Puzzle {
	vals, next := arithmetic(2+k.LevelInGroup%4, 1)
	return numbers("Count up by 1. What number is next?", next, vals...)
}

func skipByTwo(k *Kit) Puzzle {
	vals, next := arithmetic(2+k.LevelInGroup%3, 2)
	return numbers("Skip-count by 2. What comes next?", next, vals...)
}

func countByThree(k *Kit) Puzzle {
	vals, next := arithmetic(3+k.LevelInGroup%3, 3)
	return numbers("Count up by 3. Find the next number!", next, vals...)
}

func countByFive(k *Kit) Puzzle {
	vals, next := arithmetic(5+k.LevelInGroup%2, 5)
	return numbers("Count up by 5. What's next?", next, vals...)
}

func doubling(k *Kit) Puzzle {
	s := 2 + k.LevelInGroup%2
	return numbers("Double each number. Which one comes next?", s*16, s, s*2, s*4, s*8)
}

// growingSteps adds 1, then 2, then 3, ...
func growingSteps(k *Kit) Puzzle {
	n1 := 2 + k.LevelInGroup%3
	n2 := n1 + 1
	n3 := n2 + 2
	n4 := n3 + 3
	return numbers("Add 1, then 2, then 3... what's next?", n4+4, n1, n2, n3, n4)
}

func sumOfLastTwo(k *Kit) Puzzle {
	a := 2 + k.LevelInGroup%3
	b := 3 + k.LevelInGroup%2
	c := a + b
	d := b + c
	return numbers("Add the last two numbers each time. Next?", c+d, a, b, c, d)
}

func doublePlusOne(k *Kit) Puzzle {
	n1 := 2 + k.LevelInGroup%3
	n2 := n1*2 + 1
	n3 := n2*2 + 1
	n4 := n3*2 + 1
	return numbers("Double and add 1 each step. What's next?", n4*2+1, n1, n2, n3, n4)
}
