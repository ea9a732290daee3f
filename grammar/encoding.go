package grammar

import (
	"fmt"

	"github.com/dekarrin/chef/internal/util"
	"github.com/dekarrin/rezi"
)

// Binary encoding of LL(1) tables, so a table built once from a grammar can
// be stored and reloaded without recomputing the FIRST/FOLLOW fixed points.

const (
	elemKindVar   = 0
	elemKindToken = 1
)

func encSeq(s Seq) []byte {
	var data []byte

	data = append(data, rezi.EncInt(len(s))...)
	for _, el := range s {
		switch x := el.(type) {
		case Var:
			data = append(data, rezi.EncInt(elemKindVar)...)
			data = append(data, rezi.EncString(string(x))...)
		case Token:
			data = append(data, rezi.EncInt(elemKindToken)...)
			data = append(data, rezi.EncInt(int(x))...)
		default:
			panic("unknown element type in sequence")
		}
	}

	return data
}

func decSeq(data []byte) (Seq, int, error) {
	var readBytes int

	count, n, err := rezi.DecInt(data)
	if err != nil {
		return nil, 0, fmt.Errorf("element count: %w", err)
	}
	data = data[n:]
	readBytes += n

	if count < 0 {
		return nil, 0, fmt.Errorf("negative element count")
	}

	s := make(Seq, 0, count)
	for i := 0; i < count; i++ {
		kind, n, err := rezi.DecInt(data)
		if err != nil {
			return nil, 0, fmt.Errorf("element %d kind: %w", i, err)
		}
		data = data[n:]
		readBytes += n

		switch kind {
		case elemKindVar:
			name, n, err := rezi.DecString(data)
			if err != nil {
				return nil, 0, fmt.Errorf("element %d: %w", i, err)
			}
			data = data[n:]
			readBytes += n
			s = append(s, Var(name))
		case elemKindToken:
			tok, n, err := rezi.DecInt(data)
			if err != nil {
				return nil, 0, fmt.Errorf("element %d: %w", i, err)
			}
			data = data[n:]
			readBytes += n
			s = append(s, Token(tok))
		default:
			return nil, 0, fmt.Errorf("element %d has unknown kind %d", i, kind)
		}
	}

	return s, readBytes, nil
}

// MarshalBinary converts the LL(1) table into a slice of bytes that can be
// decoded with UnmarshalBinary.
func (M LL1Table) MarshalBinary() ([]byte, error) {
	var data []byte

	vars := M.Vars()
	data = append(data, rezi.EncInt(len(vars))...)

	for _, v := range vars {
		data = append(data, rezi.EncString(string(v))...)

		toks := util.OrderedKeys(M[v])
		data = append(data, rezi.EncInt(len(toks))...)

		for _, t := range toks {
			entry := M[v][t]
			data = append(data, rezi.EncInt(int(t))...)
			data = append(data, rezi.EncInt(entry.Alt)...)
			data = append(data, encSeq(entry.Seq)...)
		}
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into the
// LL1Table. All entries of the table are replaced by the decoded ones.
func (M *LL1Table) UnmarshalBinary(data []byte) error {
	decoded := NewLL1Table()

	varCount, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("variable count: %w", err)
	}
	data = data[n:]

	for i := 0; i < varCount; i++ {
		name, n, err := rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("variable %d: %w", i, err)
		}
		data = data[n:]

		tokCount, n, err := rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("variable %q token count: %w", name, err)
		}
		data = data[n:]

		for j := 0; j < tokCount; j++ {
			tok, n, err := rezi.DecInt(data)
			if err != nil {
				return fmt.Errorf("variable %q entry %d: %w", name, j, err)
			}
			data = data[n:]

			alt, n, err := rezi.DecInt(data)
			if err != nil {
				return fmt.Errorf("variable %q entry %d: %w", name, j, err)
			}
			data = data[n:]

			seq, n, err := decSeq(data)
			if err != nil {
				return fmt.Errorf("variable %q entry %d: %w", name, j, err)
			}
			data = data[n:]

			decoded.Set(Var(name), Token(tok), LL1Entry{Seq: seq, Alt: alt})
		}
	}

	*M = decoded
	return nil
}
