package stats

/*
This file defines all the metrics being collected. As new metrics are added please follow this pattern.
*/

const (
	/*
		the number of scheduling requests submitted to this scheduler
	*/
	SchedSubmitJobCounter = "submitJobCounter"

	/*
		amount of time spent enqueueing reservations for one request
	*/
	SchedSubmitJobLatency_ms = "submitJobLatency_ms"

	/*
		the number of reservation batches that failed to reach their node monitor
	*/
	SchedEnqueueFailureCounter = "enqueueFailureCounter"

	/*
		the number of getTask calls served
	*/
	SchedGetTaskCounter = "getTaskCounter"

	/*
		the number of getTask calls that arrived after their request was retired
	*/
	SchedGetTaskUnknownCounter = "getTaskUnknownCounter"

	/*
		the number of tasks bound to a node monitor
	*/
	SchedAssignedTaskCounter = "assignedTaskCounter"

	/*
		the number of requests with live placers
	*/
	SchedLivePlacersGauge = "livePlacersGauge"

	/*
		the number of frontend messages that could not be delivered
	*/
	SchedFrontendMessageErrCounter = "frontendMessageErrCounter"

	/*
		the number of frontend registrations accepted
	*/
	SchedRegisterFrontendCounter = "registerFrontendCounter"
)
