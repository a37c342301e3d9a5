package config

const (
	// TopicFlowCompleted is the NSQ topic carrying one event per finished flow invocation.
	TopicFlowCompleted = "flow.completed"

	// ChannelRunRecorder is the consumer channel that persists flow runs.
	ChannelRunRecorder = "run-recorder"
)
