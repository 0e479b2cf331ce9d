package cells_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/shapestone/shape-cells/pkg/cells"
)

// FuzzParse checks that the buffer size never changes the event sequence and
// that End is always delivered exactly once, last.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"a,b,c\n1,2,3",
		"a,b,\"c,d\"\n1,2,3",
		"a,\"b\"\"c\"\n",
		"x,y",
		",,\n,",
		"\"unterminated,\nstill",
		"ab\"c,\"d\"e\"\"\n",
		"\"\"\"\"\"\"",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed), uint8(3))
	}

	f.Fuzz(func(t *testing.T, data []byte, size uint8) {
		reference := &eventLog{}
		if err := cells.NewParser(len(data)+1).Parse(bytes.NewReader(data), reference); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		got := &eventLog{}
		if err := cells.NewParser(int(size%16)+1).Parse(bytes.NewReader(data), got); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if !reflect.DeepEqual(got.events, reference.events) {
			t.Fatalf("buffer %d: events differ\n got %q\nwant %q", int(size%16)+1, got.events, reference.events)
		}

		ends := 0
		for _, event := range got.events {
			if event == "end" {
				ends++
			}
		}
		if ends != 1 || got.events[len(got.events)-1] != "end" {
			t.Fatalf("events %q: want exactly one trailing end", got.events)
		}
	})
}
