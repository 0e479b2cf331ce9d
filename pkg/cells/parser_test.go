package cells_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/shapestone/shape-cells/internal/logging"
	"github.com/shapestone/shape-cells/pkg/cells"
)

// eventLog is a CellHandler that records every notification in order.
type eventLog struct {
	events []string
}

func (l *eventLog) NewCell(buf []byte, offset, length int) error {
	l.events = append(l.events, "cell:"+string(buf[offset:offset+length]))
	return nil
}

func (l *eventLog) EndOfRow() error {
	l.events = append(l.events, "row")
	return nil
}

func (l *eventLog) End() error {
	l.events = append(l.events, "end")
	return nil
}

func parseEvents(t *testing.T, input string, bufferSize int) []string {
	t.Helper()
	log := &eventLog{}
	if err := cells.NewParser(bufferSize).Parse(strings.NewReader(input), log); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return log.events
}

func TestParser_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		bufferSize int
		want       [][]string
	}{
		{
			name:       "quoted separator with 4-byte buffer",
			input:      "a,b,\"c,d\"\n1,2,3",
			bufferSize: 4,
			want:       [][]string{{"a", "b", "c,d"}, {"1", "2", "3"}},
		},
		{
			name:       "escaped quote",
			input:      "a,\"b\"\"c\"\n",
			bufferSize: 4,
			want:       [][]string{{"a", `b"c`}},
		},
		{
			name:       "no trailing terminator",
			input:      "x,y",
			bufferSize: 4,
			want:       [][]string{{"x", "y"}},
		},
		{
			name:       "embedded terminator",
			input:      "\"line1\nline2\",next\n",
			bufferSize: 3,
			want:       [][]string{{"line1\nline2", "next"}},
		},
		{
			name:       "consecutive separators",
			input:      "a,,c\n,,\n",
			bufferSize: 2,
			want:       [][]string{{"a", "", "c"}, {"", "", ""}},
		},
		{
			name:       "trailing separator at end of input",
			input:      "a,b,",
			bufferSize: 1,
			want:       [][]string{{"a", "b", ""}},
		},
		{
			name:       "empty input",
			input:      "",
			bufferSize: 4,
			want:       [][]string{},
		},
		{
			name:       "empty line",
			input:      "a\n\nb\n",
			bufferSize: 4,
			want:       [][]string{{"a"}, {""}, {"b"}},
		},
		{
			name:       "long quoted cell forces growth",
			input:      `"this,is,a,very,long,field,that,spans,multiple,chunks",next`,
			bufferSize: 4,
			want:       [][]string{{"this,is,a,very,long,field,that,spans,multiple,chunks", "next"}},
		},
		{
			name:       "many escaped quotes across refills",
			input:      `"a""b""c""d""e""f""g""h",next`,
			bufferSize: 2,
			want:       [][]string{{`a"b"c"d"e"f"g"h`, "next"}},
		},
		{
			name:       "bare quote mid-field kept as payload",
			input:      "ab\"c,d\n",
			bufferSize: 4,
			want:       [][]string{{`ab"c`, "d"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cells.ReadAll(strings.NewReader(tt.input), tt.bufferSize)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadAll() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParser_EventOrder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "terminated rows",
			input: "a,b\nc\n",
			want:  []string{"cell:a", "cell:b", "row", "cell:c", "row", "end"},
		},
		{
			name:  "trailing field emitted once then end",
			input: "x,y",
			want:  []string{"cell:x", "cell:y", "end"},
		},
		{
			name:  "trailing separator",
			input: "x,",
			want:  []string{"cell:x", "cell:", "end"},
		},
		{
			name:  "raw quoted cell",
			input: "a,\"b\"\"c\"\n",
			want:  []string{"cell:a", `cell:"b""c"`, "row", "end"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{"end"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, size := range []int{1, 2, 3, 4, 64} {
				got := parseEvents(t, tt.input, size)
				if !reflect.DeepEqual(got, tt.want) {
					t.Errorf("buffer %d: events = %q, want %q", size, got, tt.want)
				}
			}
		})
	}
}

func TestParser_NaiveSplitEquivalence(t *testing.T) {
	inputs := []string{
		"a,b,c\nd,e,f\n",
		"1,2\n3,4\n5,6",
		"single",
		",leading\ntrailing,\n",
		"x,,y\n\n,z",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			lines := strings.Split(input, "\n")
			if strings.HasSuffix(input, "\n") {
				lines = lines[:len(lines)-1]
			}
			want := make([][]string, 0, len(lines))
			for _, line := range lines {
				want = append(want, strings.Split(line, ","))
			}

			got, err := cells.ReadAll(strings.NewReader(input), 3)
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ReadAll() = %q, want %q", got, want)
			}
		})
	}
}

func TestParser_BufferSizeIsTransparent(t *testing.T) {
	input := "id,name,comment\n" +
		"1,alice,\"likes \"\"quotes\"\", commas\"\n" +
		"2,bob,\"multi\nline\"\n" +
		"3,,\n" +
		"4,\"" + strings.Repeat("long ", 40) + "\",end"

	want := parseEvents(t, input, len(input)*2)
	for size := 1; size <= len(input); size++ {
		got := parseEvents(t, input, size)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("buffer %d: events differ\n got %q\nwant %q", size, got, want)
		}
	}
}

func TestParser_ShortReads(t *testing.T) {
	input := "a,\"b,\nc\",d\n" + strings.Repeat("x", 300) + ",y\n"
	want := parseEvents(t, input, 8)

	readers := map[string]func(io.Reader) io.Reader{
		"one byte": iotest.OneByteReader,
		"half":     iotest.HalfReader,
		"data err": iotest.DataErrReader,
	}
	for name, wrap := range readers {
		t.Run(name, func(t *testing.T) {
			log := &eventLog{}
			parser := cells.NewParser(8)
			stats, err := parser.ParseStats(context.Background(), wrap(strings.NewReader(input)), log)
			if err != nil {
				t.Fatalf("ParseStats() error = %v", err)
			}
			if !reflect.DeepEqual(log.events, want) {
				t.Errorf("events = %q, want %q", log.events, want)
			}
			// Growth only happens on a full buffer, so the capacity stays
			// proportional to the largest cell.
			if stats.Capacity > 1024 {
				t.Errorf("Capacity = %d, want at most 1024", stats.Capacity)
			}
		})
	}
}

func TestParser_Stats(t *testing.T) {
	input := "a,b\n" + strings.Repeat("z", 40) + ",c"
	stats, err := cells.NewParser(4).ParseStats(context.Background(), strings.NewReader(input), cells.HandlerFuncs{})
	if err != nil {
		t.Fatalf("ParseStats() error = %v", err)
	}

	if stats.BytesRead != int64(len(input)) {
		t.Errorf("BytesRead = %d, want %d", stats.BytesRead, len(input))
	}
	if stats.Cells != 4 {
		t.Errorf("Cells = %d, want 4", stats.Cells)
	}
	if stats.Rows != 2 {
		t.Errorf("Rows = %d, want 2", stats.Rows)
	}
	if stats.Growths == 0 {
		t.Error("Growths = 0, want at least one growth for a 40-byte cell in a 4-byte buffer")
	}
	if stats.Capacity < 40 {
		t.Errorf("Capacity = %d, want at least 40", stats.Capacity)
	}
}

func TestParser_ReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	source := io.MultiReader(strings.NewReader("a,b\nc"), iotest.ErrReader(boom))

	log := &eventLog{}
	err := cells.NewParser(64).Parse(source, log)

	var readErr *cells.ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("Parse() error = %v, want *ReadError", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("errors.Is(err, boom) = false")
	}
	if readErr.Offset != 5 {
		t.Errorf("Offset = %d, want 5", readErr.Offset)
	}
	want := []string{"cell:a", "cell:b", "row"}
	if !reflect.DeepEqual(log.events, want) {
		t.Errorf("events = %q, want %q (no trailing cell, no end)", log.events, want)
	}
}

func TestParser_HandlerErrorStopsReading(t *testing.T) {
	stop := errors.New("stop")
	source := &countingReader{r: strings.NewReader("a,b\nc,d\ne,f\n")}

	var cellsSeen int
	handler := cells.HandlerFuncs{
		Cell: func([]byte, int, int) error {
			cellsSeen++
			if cellsSeen == 2 {
				return stop
			}
			return nil
		},
		Done: func() error {
			t.Error("End delivered after handler error")
			return nil
		},
	}

	err := cells.NewParser(4).Parse(source, handler)
	if !errors.Is(err, stop) {
		t.Fatalf("Parse() error = %v, want %v", err, stop)
	}
	if source.reads != 1 {
		t.Errorf("reads = %d, want 1", source.reads)
	}
}

func TestParser_EndError(t *testing.T) {
	stop := errors.New("end failed")
	err := cells.NewParser(4).Parse(strings.NewReader("a"), cells.HandlerFuncs{
		Done: func() error { return stop },
	})
	if !errors.Is(err, stop) {
		t.Errorf("Parse() error = %v, want %v", err, stop)
	}
}

func TestParser_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &countingReader{r: strings.NewReader("a,b\n")}
	err := cells.NewParser(4).ParseContext(ctx, source, &eventLog{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ParseContext() error = %v, want %v", err, context.Canceled)
	}
	if source.reads != 0 {
		t.Errorf("reads = %d, want 0", source.reads)
	}
}

func TestParser_DefaultBufferSize(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{0, cells.DefaultBufferSize},
		{-5, cells.DefaultBufferSize},
		{1, 1},
		{128, 128},
	}
	for _, tt := range tests {
		if got := cells.NewParser(tt.size).BufferSize(); got != tt.want {
			t.Errorf("NewParser(%d).BufferSize() = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestParser_LogsGrowth(t *testing.T) {
	var out bytes.Buffer
	logger := logging.NewWithWriter(&out, "debug")

	parser := cells.NewParser(2, cells.WithLogger(logger))
	if err := parser.Parse(strings.NewReader("abcdefgh,i\n"), cells.HandlerFuncs{}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	logged := out.String()
	for _, want := range []string{"buffer grown", "parse complete"} {
		if !strings.Contains(logged, want) {
			t.Errorf("log output %q does not contain %q", logged, want)
		}
	}
}

func TestParser_LoggerFromContext(t *testing.T) {
	var out bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewWithWriter(&out, "debug"))

	if err := cells.NewParser(4).ParseContext(ctx, strings.NewReader("a\n"), cells.HandlerFuncs{}); err != nil {
		t.Fatalf("ParseContext() error = %v", err)
	}
	if !strings.Contains(out.String(), "parse complete") {
		t.Errorf("log output %q does not contain %q", out.String(), "parse complete")
	}
}

func TestParser_Reusable(t *testing.T) {
	parser := cells.NewParser(3)
	for i := 0; i < 3; i++ {
		rows := &cells.RowCollector{}
		if err := parser.Parse(strings.NewReader("a,\"b\"\"\"\n"), rows); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if want := [][]string{{"a", `b"`}}; !reflect.DeepEqual(rows.Rows(), want) {
			t.Errorf("run %d: rows = %q, want %q", i, rows.Rows(), want)
		}
	}
}

// countingReader counts Read calls on the wrapped reader.
type countingReader struct {
	r     io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++
	return c.r.Read(p)
}
