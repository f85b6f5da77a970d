//go:build unit

package memory

func LockSlots(s *Store) int { return s.locks.size() }
