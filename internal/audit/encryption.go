package audit

// EncryptionHandler records encrypted entries.
type EncryptionHandler struct{}

func (EncryptionHandler) Visit(s *Snapshot, r *Report) {
	if !s.Encrypted {
		return
	}
	r.HasEncryptedEntries = true
	r.EncryptedEntries = append(r.EncryptedEntries, s.Name)
}
