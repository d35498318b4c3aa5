package constvars

const (
	CreateInstrumentSuccessMessage  = "Successfully created instrument"
	UpdateInstrumentSuccessMessage  = "Successfully updated instrument"
	GetInstrumentSuccessMessage     = "Successfully retrieved instrument"
	GetInstrumentsSuccessMessage    = "Successfully retrieved instruments"
	DeleteInstrumentSuccessMessage  = "Successfully deleted instrument"
	ResolveOptionsSuccessMessage    = "Successfully resolved item options"
	InterpretSubscaleSuccess        = "Successfully interpreted subscale score"
	StartAssessmentSuccessMessage   = "Successfully started assessment"
	SubmitResponsesSuccessMessage   = "Successfully submitted responses"
	GetAssessmentSuccessMessage     = "Successfully retrieved assessment"
	ValidateAssessmentSuccess       = "Successfully validated assessment"
	AdvancedScoreSuccessMessage     = "Successfully computed advanced score"
	FinalizeAssessmentSuccess       = "Successfully finalized assessment"
	RescoreAssessmentSuccessMessage = "Successfully re-scored assessment"
	DeleteAssessmentSuccessMessage  = "Successfully deleted assessment"
)
