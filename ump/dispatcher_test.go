package ump

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDispatcherM1CVM(t *testing.T) {
	var got M1CVM
	fired := 0
	d := NewDispatcher(Handlers{
		M1CVM: M1CVMHandlers{
			NoteOn: func(r M1CVM) { got = r; fired++ },
		},
	})

	r := NewM1NoteOn(2, 9, 60, 100)
	d.Push(r.W0)

	require.Equal(t, 1, fired)
	if diff := cmp.Diff(r, got); diff != "" {
		t.Fatalf("dispatched record mismatch (-want +got):\n%s", diff)
	}
}

func TestDispatcherMultiWordMessage(t *testing.T) {
	var got Sysex7
	d := NewDispatcher(Handlers{
		Data64: Data64Handlers{
			Sysex7In1: func(r Sysex7) { got = r },
		},
	})

	r := NewSysex7(0, Sysex7In1, [6]byte{0x01, 0x02, 0x03, 0, 0, 0}, 3)

	// Feeding only the first word must not fire the handler: the message is not complete yet.
	d.Push(r.W0)
	if got != (Sysex7{}) {
		t.Fatal("handler fired before the second word arrived")
	}

	d.Push(r.W1)
	require.Equal(t, r, got)
}

func TestDispatcherFourWordMessage(t *testing.T) {
	var got Stream
	d := NewDispatcher(Handlers{
		Stream: StreamHandlers{
			StartOfClip: func(r Stream) { got = r },
		},
	})

	r := NewStartOfClip()
	d.PushRecord(r.W0, r.W1, r.W2, r.W3)
	require.Equal(t, r, got)
}

func TestDispatcherUnknownSubStatus(t *testing.T) {
	var unknownWords []uint32
	d := NewDispatcher(Handlers{
		Utility: UtilityHandlers{
			Unknown: func(words []uint32) { unknownWords = words },
		},
	})

	// mt=0 (utility) with a sub-status nibble (bits 20..23) that is not one of the five defined
	// utility statuses.
	d.Push(0x00F00000)

	require.Equal(t, []uint32{0x00F00000}, unknownWords)
}

func TestDispatcherReservedMessageType(t *testing.T) {
	var unknownWords []uint32
	d := NewDispatcher(Handlers{
		Utility: UtilityHandlers{
			Unknown: func(words []uint32) { unknownWords = words },
		},
	})

	// mt=0x6 is reserved; WordsForMT treats it as a single word.
	d.Push(0x60000000)

	require.Equal(t, []uint32{0x60000000}, unknownWords)
}

func TestDispatcherUnknownCopyIsIndependent(t *testing.T) {
	var unknownWords []uint32
	d := NewDispatcher(Handlers{
		Utility: UtilityHandlers{
			Unknown: func(words []uint32) { unknownWords = words },
		},
	})
	d.Push(0x60000000)
	unknownWords[0] = 0xFFFFFFFF

	d.Push(0x60000001)
	require.Equal(t, uint32(0x60000001), unknownWords[0], "dispatcher's internal buffer must not alias the caller's slice")
}

func TestDispatcherNilHandlerIsNoop(t *testing.T) {
	d := NewDispatcher(Handlers{})
	// Must not panic even though no handler is registered anywhere.
	d.Push(NewM1NoteOn(0, 0, 1, 1).W0)
	d.Push(0x60000000)
}

func TestDispatcherFlexDataTextBank(t *testing.T) {
	var got FlexData
	d := NewDispatcher(Handlers{
		FlexData: FlexDataHandlers{
			TextCommon: func(r FlexData) { got = r },
		},
	})
	r := NewTextCommon(0, 1, 0, 0x01, [12]byte{'h', 'i'})
	d.PushRecord(r.W0, r.W1, r.W2, r.W3)
	require.Equal(t, r, got)
}
