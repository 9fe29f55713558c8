package observability

// --- HTTP Attributes ---

const (
	AttrHTTPMethod           = "http.method"
	AttrHTTPStatusCode       = "http.status_code"
	AttrHTTPURL              = "http.url"
	AttrHTTPRequestBodySize  = "http.request.body.size"
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- Workflow Attributes ---

const (
	// AttrWorkflowProvider is the upstream engine name (e.g. "dify").
	AttrWorkflowProvider = "workflow.provider"

	// AttrWorkflowRunID is the run identifier reported by the upstream engine.
	AttrWorkflowRunID = "workflow.run.id"

	// AttrWorkflowPayloadKey is the response key the raw payload was read from.
	AttrWorkflowPayloadKey = "workflow.payload.key"

	// AttrWorkflowPayloadSize is the raw payload length in bytes.
	AttrWorkflowPayloadSize = "workflow.payload.size"
)

// --- Quiz Attributes ---

const (
	AttrQuizTopic         = "quiz.topic"
	AttrQuizQuestionType  = "quiz.question_type"
	AttrQuizRows          = "quiz.rows"
	AttrQuizQuestions     = "quiz.questions"
	AttrQuizRowPreview    = "quiz.row.preview"
	AttrQuizDefaultSkill  = "quiz.default_skill"
	AttrQuizRequestedSize = "quiz.requested_count"
)

// --- General Attributes ---

const (
	AttrError             = "error"
	AttrDuration          = "duration"
	AttrStatus            = "status"
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	SpanGenerate    = "quiz.generate"
	SpanWorkflowRun = "workflow.run"
	SpanParse       = "quiz.parse"
)

// --- Event Names ---

const (
	EventHTTPRequestPrepared = "http.request.prepared"
	EventHTTPRequestError    = "http.request.error"
	EventHTTPResponse        = "http.response.received"
	EventRowDropped          = "quiz.row.dropped"
)

// --- Metric Names ---

const (
	MetricRowsParsed       = "quizforge.rows.parsed"
	MetricRowsDropped      = "quizforge.rows.dropped"
	MetricQuestionsBuilt   = "quizforge.questions.built"
	MetricWorkflowRuns     = "quizforge.workflow.runs"
	MetricWorkflowDuration = "quizforge.workflow.duration"
)
