package variants

import "strings"

// knightPlacements lists where the two knights go among the five
// squares left after the bishops and the queen are placed.
var knightPlacements = [10][2]int{
	{0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 2}, {1, 3}, {1, 4},
	{2, 3}, {2, 4},
	{3, 4},
}

// Chess960FEN returns the starting position with Scharnagl number n.
// Position 518 is the orthodox setup. n is taken modulo 960.
func Chess960FEN(n int) string {
	n %= 960
	if n < 0 {
		n += 960
	}

	var rank [8]byte
	rank[2*(n%4)+1] = 'b'
	n /= 4
	rank[2*(n%4)] = 'b'
	n /= 4

	// free returns the file of the i-th empty square.
	free := func(i int) int {
		for file, c := range rank {
			if c != 0 {
				continue
			}
			if i == 0 {
				return file
			}
			i--
		}
		panic("variants: no empty square left")
	}

	rank[free(n%6)] = 'q'
	n /= 6

	// The second knight is counted before the first is placed
	knights := knightPlacements[n]
	second := free(knights[1])
	rank[free(knights[0])] = 'n'
	rank[second] = 'n'

	for _, c := range []byte("rkr") {
		rank[free(0)] = c
	}

	black := string(rank[:])
	return black + "/pppppppp/8/8/8/8/PPPPPPPP/" + strings.ToUpper(black) + " w KQkq - 0 1"
}
