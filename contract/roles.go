package contract

import "kodama_protocol/sdk"

// Role-based access control as an explicit principal set per capability,
// checked through a pure predicate. The threshold/multisig machinery behind
// a principal address is the platform's concern, not ours.

func roleKey(role Role) string {
	return singletonKey(kRole) + role.String()
}

func loadRolePrincipals(role Role) []sdk.Address {
	ptr := sdk.StateGetObject(roleKey(role))
	if ptr == nil || *ptr == "" {
		return nil
	}
	return decodeAddressList([]byte(*ptr))
}

func saveRolePrincipals(role Role, addrs []sdk.Address) {
	sdk.StateSetObject(roleKey(role), encodeAddressList(addrs))
}

// isAuthorized reports whether the caller holds the given role.
func isAuthorized(caller sdk.Address, role Role) bool {
	for _, a := range loadRolePrincipals(role) {
		if a == caller {
			return true
		}
	}
	return false
}

// requireRole aborts unless the caller holds the role.
func requireRole(caller sdk.Address, role Role) {
	if !isAuthorized(caller, role) {
		abortAuth("caller lacks role " + role.String())
	}
}

// grantRole appends a principal to the role set, rejecting duplicates.
func grantRole(role Role, addr sdk.Address) {
	if !addr.IsValid() {
		abortValidation("invalid principal address")
	}
	addrs := loadRolePrincipals(role)
	for _, a := range addrs {
		if a == addr {
			abortValidation("principal already holds role")
		}
	}
	saveRolePrincipals(role, append(addrs, addr))
}

// revokeRole removes a principal from the role set.
func revokeRole(role Role, addr sdk.Address) {
	addrs := loadRolePrincipals(role)
	out := addrs[:0]
	found := false
	for _, a := range addrs {
		if a == addr {
			found = true
			continue
		}
		out = append(out, a)
	}
	if !found {
		abortValidation("principal does not hold role")
	}
	saveRolePrincipals(role, out)
}

// treasuryAddress resolves the deposit destination for bonds and the sale.
func treasuryAddress() sdk.Address {
	addrs := loadRolePrincipals(RoleTreasury)
	if len(addrs) == 0 {
		abortState("no treasury principal configured")
	}
	return addrs[0]
}
