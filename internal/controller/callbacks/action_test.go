package callbacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	actions := []Action{
		{Kind: KindApprovePayment, ID: 42},
		{Kind: KindRejectPayment, ID: 1},
		{Kind: KindAddMember, ID: 7},
		{Kind: KindDeleteItem, ID: 99},
		{Kind: KindProgressKind, ID: 3},
		{Kind: KindFinishGroup},
		{Kind: KindSkipProgram},
		{Kind: KindAddItem},
		{Kind: KindPaySessions},
	}

	for _, action := range actions {
		decoded, err := Decode(action.Encode())
		require.NoError(t, err, "action %v", action)
		assert.Equal(t, action, decoded)
	}
}

func TestEncodeWithoutID(t *testing.T) {
	assert.Equal(t, "finish_group", Action{Kind: KindFinishGroup}.Encode())
	assert.Equal(t, "approve_payment:42", Action{Kind: KindApprovePayment, ID: 42}.Encode())
}

func TestDecodeInvalid(t *testing.T) {
	for _, data := range []string{"", ":42", "approve_payment:abc", "approve_payment:"} {
		_, err := Decode(data)
		assert.Error(t, err, "data %q", data)
	}
}
