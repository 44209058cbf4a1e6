package lisp

import (
	"testing"
	"time"
)

func TestOSCPadAlignsTo4BytesAndTerminates(t *testing.T) {
	for i, tt := range []struct {
		in   string
		want int
	}{
		{"", 8},
		{"ab", 8},
		{"abc", 8},
		{"abcd", 12},
		{"abcdefg", 12},
	} {
		got := oscPad(tt.in)
		if len(got) != tt.want {
			t.Errorf("%d) oscPad(%q) length = %d want %d", i, tt.in, len(got), tt.want)
		}
		tagOff := len(got) - 4
		if got[tagOff] != ',' || got[tagOff+1] != 0 || got[tagOff+2] != 0 || got[tagOff+3] != 0 {
			t.Errorf("%d) oscPad(%q) missing ,\\0\\0\\0 type-tag block at end", i, tt.in)
		}
		for _, b := range got[len(tt.in):tagOff] {
			if b != 0 {
				t.Errorf("%d) oscPad(%q) payload padding byte = %d want 0", i, tt.in, b)
			}
		}
	}
}

func TestUDPSendRecvRoundTrip(t *testing.T) {
	env := GlobalEnv()
	i := &Interp{Env: env}

	recvCh := make(chan Atom, 1)
	errCh := make(chan error, 1)
	go func() {
		v, err := i.EvalString(`(udprecv "127.0.0.1" 41234)`)
		if err != nil {
			errCh <- err
			return
		}
		recvCh <- v
	}()

	time.Sleep(50 * time.Millisecond) // let the listener bind before sending
	if _, err := i.EvalString(`(udpsend "127.0.0.1" 41234 "hello")`); err != nil {
		t.Fatalf("udpsend: %v", err)
	}

	select {
	case v := <-recvCh:
		if v.Str() != "hello" {
			t.Fatalf("got %q want %q", v.Str(), "hello")
		}
	case err := <-errCh:
		t.Fatalf("udprecv: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for udprecv")
	}
}
