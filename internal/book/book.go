// Package book reads and writes Polyglot opening books.
//
// A book is a sequence of 16-byte big-endian records: the position key,
// the move, a weight and a learn value. Several records may share one
// key. Castling is stored as the king capturing its own rook.
package book

import (
	"bufio"
	"encoding/binary"
	"io"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/lgbarn/variantboard-go/internal/chess"
	"github.com/lgbarn/variantboard-go/internal/engine"
	"github.com/lgbarn/variantboard-go/internal/errors"
)

const entrySize = 16

// Entry is one book record.
type Entry struct {
	Key    uint64
	Move   chess.GenericMove
	Weight uint16
	Learn  uint32
}

// Book is an in-memory opening book sorted by key.
type Book struct {
	entries []Entry
}

// New returns an empty book.
func New() *Book {
	return &Book{}
}

// Open reads the book file at path.
func Open(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bk, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return bk, nil
}

// Read reads every record from r. A trailing partial record is an
// error wrapping ErrInvalidBook.
func Read(r io.Reader) (*Book, error) {
	bk := New()
	var buf [entrySize]byte
	for n := 1; ; n++ {
		_, err := io.ReadFull(r, buf[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, &errors.ParseError{
				Err:      errors.ErrInvalidBook,
				Field:    "record",
				Offset:   n,
				Expected: "16 bytes",
			}
		}
		if err != nil {
			return nil, err
		}
		bk.entries = append(bk.entries, Entry{
			Key:    binary.BigEndian.Uint64(buf[0:8]),
			Move:   decodeMove(binary.BigEndian.Uint16(buf[8:10])),
			Weight: binary.BigEndian.Uint16(buf[10:12]),
			Learn:  binary.BigEndian.Uint32(buf[12:16]),
		})
	}
	sort.SliceStable(bk.entries, func(i, j int) bool {
		return bk.entries[i].Key < bk.entries[j].Key
	})
	return bk, nil
}

// Write writes the book's records to w in key order.
func (bk *Book) Write(w io.Writer) error {
	var buf [entrySize]byte
	for _, e := range bk.entries {
		binary.BigEndian.PutUint64(buf[0:8], e.Key)
		binary.BigEndian.PutUint16(buf[8:10], encodeMove(e.Move))
		binary.BigEndian.PutUint16(buf[10:12], e.Weight)
		binary.BigEndian.PutUint32(buf[12:16], e.Learn)
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	return nil
}

// Len returns the number of records.
func (bk *Book) Len() int {
	return len(bk.entries)
}

// Entries returns the records for key. The slice must not be modified.
func (bk *Book) Entries(key uint64) []Entry {
	i := sort.Search(len(bk.entries), func(i int) bool { return bk.entries[i].Key >= key })
	j := i
	for j < len(bk.entries) && bk.entries[j].Key == key {
		j++
	}
	return bk.entries[i:j]
}

// Add records move for key. A move already stored for key gains
// weight instead of a second record.
func (bk *Book) Add(key uint64, move chess.GenericMove, weight uint16) {
	i := sort.Search(len(bk.entries), func(i int) bool { return bk.entries[i].Key >= key })
	j := i
	for ; j < len(bk.entries) && bk.entries[j].Key == key; j++ {
		if bk.entries[j].Move == move {
			bk.entries[j].Weight += weight
			return
		}
	}
	bk.entries = append(bk.entries, Entry{})
	copy(bk.entries[j+1:], bk.entries[j:])
	bk.entries[j] = Entry{Key: key, Move: move, Weight: weight}
}

// Pick chooses one of the moves stored for key at random, each with a
// probability proportional to its weight. rng may be nil.
func (bk *Book) Pick(key uint64, rng *rand.Rand) (chess.GenericMove, bool) {
	entries := bk.Entries(key)
	total := 0
	for _, e := range entries {
		total += int(e.Weight)
	}
	if total <= 0 {
		return chess.NullGenericMove, false
	}

	var pick int
	if rng != nil {
		pick = rng.IntN(total)
	} else {
		pick = rand.IntN(total)
	}
	current := 0
	for _, e := range entries {
		current += int(e.Weight)
		if current > pick {
			return e.Move, true
		}
	}
	return chess.NullGenericMove, false
}

// Move picks a book move for the position on b and returns it as a
// legal move of b. It returns false when the book has no move or the
// stored move is illegal on b.
func (bk *Book) Move(b *engine.Board, rng *rand.Rand) (chess.Move, bool) {
	g, ok := bk.Pick(b.Key(), rng)
	if !ok {
		return chess.NullMove, false
	}
	m := b.MoveFromGenericMove(g)
	if !b.IsLegalMove(m) {
		return chess.NullMove, false
	}
	return m, true
}

// decodeMove unpacks a Polyglot move: target file and rank in bits
// 0-5, source in bits 6-11, promotion in bits 12-14 with 1 meaning a
// knight.
func decodeMove(bits uint16) chess.GenericMove {
	g := chess.GenericMove{
		Target: chess.NewSquare(int(bits&7), int(bits>>3&7)),
		Source: chess.NewSquare(int(bits>>6&7), int(bits>>9&7)),
	}
	if promotion := int(bits >> 12 & 7); promotion > 0 {
		g.Promotion = promotion + 1
	}
	return g
}

func encodeMove(g chess.GenericMove) uint16 {
	bits := uint16(g.Target.File) | uint16(g.Target.Rank)<<3 |
		uint16(g.Source.File)<<6 | uint16(g.Source.Rank)<<9
	if g.Promotion > 0 {
		bits |= uint16(g.Promotion-1) << 12
	}
	return bits
}
