package upload_payment_proof

// AttachProofRequest чек уже загружен клиентом, передаётся ссылка
type AttachProofRequest struct {
	ProofURL string `json:"proofUrl"`
}
