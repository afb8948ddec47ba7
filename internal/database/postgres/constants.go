package postgres

// DefaultHistoryKeep is how many previous bodies are kept per family.
const DefaultHistoryKeep = 20

const (
	queryLockDocuments = `
		SELECT family, body
		FROM economy_documents
	WHERE family       = ANY($1)
		ORDER BY family
		FOR UPDATE`

	queryArchiveDocument                                    = `
		INSERT INTO economy_document_history (family, body)
	SELECT family, body FROM economy_documents WHERE family = $1`

	queryUpsertDocument                     = `
		INSERT INTO economy_documents (family, body, updated_at)
		VALUES ($1, $2, NOW())
	ON CONFLICT (family) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`

	queryPruneHistory = `
		DELETE FROM economy_document_history
	WHERE family      = $1 AND history_id NOT IN (
			SELECT history_id FROM economy_document_history
	WHERE family      = $1
			ORDER BY history_id DESC
			LIMIT $2
		)`
)

// Error Messages
const (
	ErrMsgFailedToLockDocuments = "failed to lock documents"
	ErrMsgFailedToSaveDocument  = "failed to save document"
	ErrMsgFailedToCommit        = "failed to commit documents"
)
