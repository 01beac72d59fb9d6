package localstore

// CorruptSlot overwrites the stored payload with invalid JSON.
func (s *Store) CorruptSlot() error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (slot, payload, updated_at)
		VALUES (?, 'not json', CURRENT_TIMESTAMP)
		ON CONFLICT(slot) DO UPDATE SET payload = 'not json'
	`, s.slot)
	return err
}
