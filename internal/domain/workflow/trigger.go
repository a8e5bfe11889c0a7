package workflow

// Trigger is a user action or automatic step that can cause a transition
type Trigger string

const (
	TriggerOpen    Trigger = "OPEN"
	TriggerConfirm Trigger = "CONFIRM"
	TriggerCancel  Trigger = "CANCEL"
	TriggerReset   Trigger = "RESET"
	TriggerFinish  Trigger = "FINISH"
	TriggerApprove Trigger = "APPROVE"
	TriggerReject  Trigger = "REJECT"
)

func (t Trigger) String() string {
	return string(t)
}
