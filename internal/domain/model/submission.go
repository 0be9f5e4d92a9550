package model

// AccountRequest is the JSON part of the final multipart submission.
type AccountRequest struct {
	Account           AccountInfo         `json:"account"`
	Payment           PaymentInfo         `json:"payment"`
	Medical           MedicalDirectorInfo `json:"medical"`
	Acknowledgements  AcknowledgementInfo `json:"acknowledgements"`
	PreferredLocation int                 `json:"preferredLocation"`
}

// SubmissionResult is returned by the backend for a created account.
type SubmissionResult struct {
	ReferenceCode string `json:"referenceCode"`
}
