package sx126x

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestMarshalUint16(t *testing.T) {
	cases := []struct {
		val uint16
		rep []byte
	}{
		{0x1234, []byte{0x12, 0x34}},
		{0, []byte{0, 0}},
		{math.MaxUint16, []byte{0xFF, 0xFF}},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("marshal16_%d", c.val), func(t *testing.T) {
			rep := marshalUint16(c.val)
			if !bytes.Equal(rep, c.rep) {
				t.Errorf("marshalUint16(%04X) == % X, want % X", c.val, rep, c.rep)
			}
			if v := unmarshalUint16(rep); v != c.val {
				t.Errorf("unmarshalUint16(% X) == %04X, want %04X", rep, v, c.val)
			}
		})
	}
}

func TestMarshalUint24(t *testing.T) {
	cases := []struct {
		val uint32
		rep []byte
	}{
		{0x123456, []byte{0x12, 0x34, 0x56}},
		{0, []byte{0, 0, 0}},
		{maxUint24, []byte{0xFF, 0xFF, 0xFF}},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("marshal24_%d", c.val), func(t *testing.T) {
			rep := marshalUint24(c.val)
			if !bytes.Equal(rep, c.rep) {
				t.Errorf("marshalUint24(%06X) == % X, want % X", c.val, rep, c.rep)
			}
			if v := unmarshalUint24(rep); v != c.val {
				t.Errorf("unmarshalUint24(% X) == %06X, want %06X", rep, v, c.val)
			}
		})
	}
}

func TestMarshalUint32(t *testing.T) {
	cases := []struct {
		val uint32
		rep []byte
	}{
		{0x12345678, []byte{0x12, 0x34, 0x56, 0x78}},
		{0, []byte{0, 0, 0, 0}},
		{math.MaxUint32, []byte{0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("marshal32_%d", c.val), func(t *testing.T) {
			rep := marshalUint32(c.val)
			if !bytes.Equal(rep, c.rep) {
				t.Errorf("marshalUint32(%08X) == % X, want % X", c.val, rep, c.rep)
			}
			if v := unmarshalUint32(rep); v != c.val {
				t.Errorf("unmarshalUint32(% X) == %08X, want %08X", rep, v, c.val)
			}
		})
	}
}

func TestCheckUint24(t *testing.T) {
	if err := checkUint24(OpSetTx, "timeout", maxUint24); err != nil {
		t.Errorf("checkUint24(%06X) == %v, want nil", maxUint24, err)
	}
	err := checkUint24(OpSetTx, "timeout", maxUint24+1)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("checkUint24(%06X) == %v, want OutOfRangeError", maxUint24+1, err)
	}
	if oor.Op != OpSetTx || oor.Field != "timeout" {
		t.Errorf("error context = %v/%s, want SetTx/timeout", oor.Op, oor.Field)
	}
}
