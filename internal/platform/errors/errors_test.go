package errors

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsByCode(t *testing.T) {
	base := New(CodeCombatantNotInEncounter, "no such combatant")
	other := WithMetadata(CodeCombatantNotInEncounter, "different message", map[string]string{"Name": "Vex"})

	if !errors.Is(other, base) {
		t.Error("errors with the same code should match via errors.Is")
	}

	mismatch := New(CodeZoneNotFound, "no such zone")
	if errors.Is(mismatch, base) {
		t.Error("errors with different codes should not match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(CodeNotFound, "load character", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if got := GetCode(err); got != CodeNotFound {
		t.Errorf("GetCode() = %q, want %q", got, CodeNotFound)
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if got := GetCode(fmt.Errorf("plain")); got != CodeUnknown {
		t.Errorf("GetCode(plain error) = %q, want %q", got, CodeUnknown)
	}
	if got := GetCode(nil); got != CodeUnknown {
		t.Errorf("GetCode(nil) = %q, want %q", got, CodeUnknown)
	}
}

func TestHandleErrorNil(t *testing.T) {
	if err := HandleError(nil, ""); err != nil {
		t.Errorf("HandleError(nil) = %v, want nil", err)
	}
}

func TestHandleErrorDomain(t *testing.T) {
	err := WithMetadata(CodeZoneNotFound, "zone lookup failed", map[string]string{"Zone": "docklands"})
	got := HandleError(err, "")

	st, ok := status.FromError(got)
	if !ok {
		t.Fatalf("HandleError() did not return a gRPC status: %v", got)
	}
	if st.Code() != codes.NotFound {
		t.Errorf("status code = %v, want %v", st.Code(), codes.NotFound)
	}
	if st.Message() != "zone lookup failed" {
		t.Errorf("status message = %q, want internal message", st.Message())
	}
}

func TestHandleErrorUnknown(t *testing.T) {
	got := HandleError(errors.New("boom"), "")
	st, ok := status.FromError(got)
	if !ok {
		t.Fatalf("HandleError() did not return a gRPC status: %v", got)
	}
	if st.Code() != codes.Internal {
		t.Errorf("status code = %v, want %v", st.Code(), codes.Internal)
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeCombatantNotInEncounter, codes.NotFound},
		{CodeEncounterExists, codes.AlreadyExists},
		{CodeWeaponOutOfAmmo, codes.FailedPrecondition},
		{CodeDicePoolNegative, codes.InvalidArgument},
		{CodeUnknown, codes.Internal},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.GRPCCode(); got != tt.want {
				t.Errorf("GRPCCode() = %v, want %v", got, tt.want)
			}
		})
	}
}
