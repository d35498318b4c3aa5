package constvars

const (
	URLParamInstrumentID = "instrument_id"
	URLParamAssessmentID = "assessment_id"
	URLParamItemNumber   = "item_number"
	URLParamSubscaleID   = "subscale_id"
)

const (
	URLQueryParamVersion  = "version"
	URLQueryParamScore    = "score"
	URLQueryParamSubject  = "subject"
	URLQueryParamPage     = "page"
	URLQueryParamPageSize = "page_size"
)
