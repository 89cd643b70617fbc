package contract

import "kodama_protocol/sdk"

// State accessors for governance: proposals, write-once vote receipts and
// the per-proposer latest-proposal pointer.

func proposalCount() uint64 {
	return getCount(kProposalCount)
}

func loadProposal(id uint64) *Proposal {
	ptr := sdk.StateGetObject(idKey(kProposal, id))
	if ptr == nil || *ptr == "" {
		abortValidation("unknown proposal")
	}
	return decodeProposal([]byte(*ptr))
}

func saveProposal(p *Proposal) {
	sdk.StateSetObject(idKey(kProposal, p.ID), encodeProposal(p))
}

func loadReceipt(proposalID uint64, voter sdk.Address) *VoteReceipt {
	ptr := sdk.StateGetObject(idAddrKey(kVoteReceipt, proposalID, voter))
	if ptr == nil || *ptr == "" {
		return &VoteReceipt{}
	}
	return decodeReceipt([]byte(*ptr))
}

func saveReceipt(proposalID uint64, voter sdk.Address, r *VoteReceipt) {
	sdk.StateSetObject(idAddrKey(kVoteReceipt, proposalID, voter), encodeReceipt(r))
}

// latestProposalOf returns the proposer's newest proposal id, zero if none.
func latestProposalOf(addr sdk.Address) uint64 {
	ptr := sdk.StateGetObject(addrKey(kLatestProposal, addr))
	if ptr == nil || *ptr == "" {
		return 0
	}
	return decodeCount(*ptr)
}

func saveLatestProposal(addr sdk.Address, id uint64) {
	sdk.StateSetObject(addrKey(kLatestProposal, addr), encodeCount(id))
}
