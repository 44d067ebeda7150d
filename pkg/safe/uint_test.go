package safe

import (
	"math"
	"testing"
)

type uint64Args[T interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}] struct {
	v T
}

type uint64TestCase[T interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}] struct {
	name    string
	args    uint64Args[T]
	want    uint64
	wantErr bool
}

func runUint64Case[T interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}](t *testing.T, tc uint64TestCase[T]) {
	t.Helper()

	t.Run(tc.name, func(t *testing.T) {
		got, err := Uint64(tc.args.v)
		if (err != nil) != tc.wantErr {
			t.Errorf("Uint64() error = %v, wantErr %v", err, tc.wantErr)
			return
		}
		if got != tc.want {
			t.Errorf("Uint64() got = %v, want %v", got, tc.want)
		}
	})
}

func TestUint64(t *testing.T) {
	runUint64Case(t, uint64TestCase[int]{name: "int positive", args: uint64Args[int]{v: 99}, want: 99})
	runUint64Case(t, uint64TestCase[int]{name: "int negative", args: uint64Args[int]{v: -1}, wantErr: true})
	runUint64Case(t, uint64TestCase[int64]{name: "int64 negative", args: uint64Args[int64]{v: -100}, wantErr: true})
	runUint64Case(t, uint64TestCase[int64]{name: "int64 large positive", args: uint64Args[int64]{v: math.MaxInt64}, want: math.MaxInt64})
	runUint64Case(t, uint64TestCase[uint]{name: "uint small", args: uint64Args[uint]{v: 5}, want: 5})
	runUint64Case(t, uint64TestCase[uint32]{name: "uint32 value", args: uint64Args[uint32]{v: math.MaxUint32}, want: math.MaxUint32})
	runUint64Case(t, uint64TestCase[uint64]{name: "uint64 value", args: uint64Args[uint64]{v: math.MaxUint64}, want: math.MaxUint64})
	runUint64Case(t, uint64TestCase[int32]{name: "int32 zero", args: uint64Args[int32]{v: 0}, want: 0})
}

func TestAddUint64(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{name: "small", a: 2, b: 3, want: 5},
		{name: "zero", a: 0, b: 0, want: 0},
		{name: "boundary ok", a: math.MaxUint64 - 1, b: 1, want: math.MaxUint64},
		{name: "overflow", a: math.MaxUint64, b: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddUint64(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddUint64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("AddUint64() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMulUint64(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{name: "small", a: 4, b: 4096, want: 16384},
		{name: "zero factor", a: 0, b: math.MaxUint64, want: 0},
		{name: "boundary ok", a: 1, b: math.MaxUint64, want: math.MaxUint64},
		{name: "overflow", a: 2, b: math.MaxUint64/2 + 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulUint64(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MulUint64() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("MulUint64() got = %v, want %v", got, tt.want)
			}
		})
	}
}
