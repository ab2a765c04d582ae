package constant

// Document processing lifecycle. Exactly one run is in flight per document;
// reprocessing a completed document is an explicit reset (old vectors are
// deleted before the new run stores).
const (
	DocumentStatusUploaded   = "uploaded"
	DocumentStatusProcessing = "processing"
	DocumentStatusCompleted  = "completed"
	DocumentStatusFailed     = "failed"
)

// Which path produced the chunk embeddings.
const (
	EmbeddingMethodPrimary  = "primary"
	EmbeddingMethodDegraded = "degraded"
)

// Topic for the in-process ingestion queue.
const DocumentUploadedTopic = "DOCUMENT_UPLOADED"
