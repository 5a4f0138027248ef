package extractService

// ExtractBets runs the full extraction pipeline for one uploaded file:
// normalize the buffer into rows, assemble records with aggregates, and
// sanitize date fields. The only error is ErrNoDataExtracted; malformed
// rows and fields degrade locally without failing the batch.
func ExtractBets(userID string, data []byte) (*Extraction, error) {
	rows, err := ExtractRows(data)
	if err != nil {
		return nil, err
	}

	ex := AssembleRecords(userID, rows)
	SanitizeDates(ex)
	return ex, nil
}
