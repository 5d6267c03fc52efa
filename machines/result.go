package machines

type Result string

const (
	ResultAccept  Result = "accept"
	ResultReject  Result = "reject"
	ResultHalt    Result = "halt"
	ResultTimeout Result = "timeout"
	ResultError   Result = "error"
)

func (r Result) String() string {
	return string(r)
}
