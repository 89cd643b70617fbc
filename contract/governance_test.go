package contract

import (
	"fmt"
	"testing"

	"kodama_protocol/sdk"

	"github.com/stretchr/testify/require"
)

func proposePayload(target, method, payload string) *string {
	return strptr(fmt.Sprintf(
		`{"targets":[%q],"methods":[%q],"payloads":[%q],"values":[0]}`,
		target, method, payload))
}

func proposalState(t *testing.T, id uint64) string {
	t.Helper()
	resp := GovernanceState(strptr(fmt.Sprintf(`{"proposalId":%d}`, id)))
	require.NotNil(t, resp)
	var out struct {
		Status string `json:"status"`
	}
	decodeJSON(t, *resp, &out)
	return out.Status
}

func TestGovernanceDefeatedWithoutVotes(t *testing.T) {
	setup(t)

	asTx(t, guardian, func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})
	require.Equal(t, "pending", proposalState(t, 1))

	sdk.MockAdvanceTime(FallbackVotingDelaySecs + 1)
	require.Equal(t, "active", proposalState(t, 1))

	sdk.MockAdvanceTime(FallbackVotingPeriodSecs + 1)
	require.Equal(t, "defeated", proposalState(t, 1))

	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernanceQueue(strptr(`{"proposalId":1}`))
	})
}

func TestGovernanceVotingPowerSnapshotsAtStart(t *testing.T) {
	setup(t)
	lockFor(t, alice, 500)

	asTx(t, guardian, func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})

	// bob locks after the proposal was created but before voting opens;
	// the snapshot at start time still sees his lock
	sdk.MockAdvanceTime(FallbackVotingDelaySecs / 2)
	lockFor(t, bob, 400)

	sdk.MockAdvanceTime(FallbackVotingDelaySecs/2 + 1)
	require.Equal(t, "active", proposalState(t, 1))

	asTx(t, alice, func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"for"}`))
	})
	asTx(t, bob, func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"against"}`))
	})

	// carol locks during the voting window: zero power at the snapshot
	lockFor(t, carol, 1000)
	sdk.MockNextTx(carol)
	expectAbort(t, "state_error", func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"for"}`))
	})

	pr := loadProposal(1)
	require.Greater(t, pr.ForVotes, pr.AgainstVotes)
	require.EqualValues(t, 0, pr.AbstainVotes)
}

func TestGovernanceQueueExecuteLifecycle(t *testing.T) {
	setup(t)
	lockFor(t, alice, 500)

	var calls []string
	sdk.MockRegisterContract("contract:other", func(method, payload string) (string, error) {
		calls = append(calls, method+"|"+payload)
		return "ok", nil
	})

	asTx(t, guardian, func() {
		GovernancePropose(proposePayload("contract:other", "set_fee", `{"fee":1}`))
	})
	sdk.MockAdvanceTime(FallbackVotingDelaySecs + 1)
	asTx(t, alice, func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"for"}`))
	})
	sdk.MockAdvanceTime(FallbackVotingPeriodSecs)
	require.Equal(t, "succeeded", proposalState(t, 1))

	asTx(t, guardian, func() {
		GovernanceQueue(strptr(`{"proposalId":1}`))
	})
	require.Equal(t, "queued", proposalState(t, 1))

	// timelock still running
	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernanceExecute(strptr(`{"proposalId":1}`))
	})

	sdk.MockAdvanceTime(FallbackTimelockDelaySecs)
	asTx(t, guardian, func() {
		GovernanceExecute(strptr(`{"proposalId":1}`))
	})
	require.Equal(t, "executed", proposalState(t, 1))
	require.Equal(t, []string{`set_fee|{"fee":1}`}, calls)

	// double execution
	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernanceExecute(strptr(`{"proposalId":1}`))
	})
}

func TestGovernanceQueuedProposalExpires(t *testing.T) {
	setup(t)
	lockFor(t, alice, 500)

	asTx(t, guardian, func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})
	sdk.MockAdvanceTime(FallbackVotingDelaySecs + 1)
	asTx(t, alice, func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"for"}`))
	})
	sdk.MockAdvanceTime(FallbackVotingPeriodSecs)
	asTx(t, guardian, func() {
		GovernanceQueue(strptr(`{"proposalId":1}`))
	})

	sdk.MockAdvanceTime(FallbackTimelockDelaySecs + FallbackGracePeriodSecs)
	require.Equal(t, "expired", proposalState(t, 1))

	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernanceExecute(strptr(`{"proposalId":1}`))
	})
}

func TestGovernanceGuardianCancel(t *testing.T) {
	setup(t)

	asTx(t, guardian, func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})

	// a stranger cannot cancel
	sdk.MockNextTx(alice)
	expectAbort(t, "authorization_error", func() {
		GovernanceCancel(strptr(`{"proposalId":1}`))
	})

	asTx(t, guardian, func() {
		GovernanceCancel(strptr(`{"proposalId":1}`))
	})
	require.Equal(t, "canceled", proposalState(t, 1))

	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernanceCancel(strptr(`{"proposalId":1}`))
	})
}

func TestGovernanceOneLiveProposalPerProposer(t *testing.T) {
	setup(t)

	asTx(t, guardian, func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})
	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})
}

func TestGovernancePublicPhaseActivation(t *testing.T) {
	setup(t)
	lockFor(t, alice, 200)

	// board-only while the public phase is off
	sdk.MockNextTx(alice)
	expectAbort(t, "authorization_error", func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})

	// activation needs a scheduled time, and the schedule must have passed
	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernanceActivatePublic(nil)
	})
	asTx(t, guardian, func() {
		SetParam(strptr(fmt.Sprintf(`{"name":"public_governance_at","value":"%d"}`, sdk.MockNow()+DaySecs)))
	})
	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernanceActivatePublic(nil)
	})

	sdk.MockAdvanceTime(DaySecs)
	asTx(t, guardian, func() {
		GovernanceActivatePublic(nil)
	})

	// one-way switch
	sdk.MockNextTx(guardian)
	expectAbort(t, "state_error", func() {
		GovernanceActivatePublic(nil)
	})

	// alice clears the threshold now
	asTx(t, alice, func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})

	// carol has no power at all
	sdk.MockNextTx(carol)
	expectAbort(t, "authorization_error", func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})
}

func TestGovernanceVotingOpensAfterStartTime(t *testing.T) {
	setup(t)
	lockFor(t, alice, 500)

	asTx(t, guardian, func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})

	// at exactly the start time the proposal is still pending
	sdk.MockAdvanceTime(FallbackVotingDelaySecs)
	require.Equal(t, "pending", proposalState(t, 1))
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"for"}`))
	})

	// one second later voting opens
	sdk.MockAdvanceTime(1)
	require.Equal(t, "active", proposalState(t, 1))
	asTx(t, alice, func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"for"}`))
	})
	require.Greater(t, loadProposal(1).ForVotes, Amount(0))
}

func TestGovernanceDoubleVoteRejected(t *testing.T) {
	setup(t)
	lockFor(t, alice, 500)

	asTx(t, guardian, func() {
		GovernancePropose(proposePayload("contract:other", "noop", "{}"))
	})
	sdk.MockAdvanceTime(FallbackVotingDelaySecs + 1)
	asTx(t, alice, func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"for"}`))
	})
	sdk.MockNextTx(alice)
	expectAbort(t, "state_error", func() {
		GovernanceCastVote(strptr(`{"proposalId":1,"support":"against"}`))
	})
}
