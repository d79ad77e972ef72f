package session

// Join adds a player to the registered set, reporting whether they were
// newly added. Membership gates point eligibility for sessions started
// afterwards; live sessions keep their snapshot.
func (r *Registry) Join(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[playerID]; ok {
		return false
	}
	r.members[playerID] = struct{}{}
	return true
}

// Leave removes a player from the registered set, reporting whether they
// were a member.
func (r *Registry) Leave(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[playerID]; !ok {
		return false
	}
	delete(r.members, playerID)
	return true
}

// IsMember reports whether the player has opted in to scoring.
func (r *Registry) IsMember(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[playerID]
	return ok
}

// MemberCount returns the size of the registered set.
func (r *Registry) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}
