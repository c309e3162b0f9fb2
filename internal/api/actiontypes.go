package api

// ActionType is one row of the audit action lookup table.
// Code is the numeric code shown in the UI filter, Constant is what the backend stores.
type ActionType struct {
	Code     int    `json:"code" yaml:"code"`
	Constant string `json:"constant" yaml:"constant"`
	Label    string `json:"label" yaml:"label"`
	LabelEN  string `json:"label_en" yaml:"label_en"`
}

// ActionTypes is maintained client-side and never fetched
var ActionTypes = []ActionType{
	{Code: 1, Constant: "LOGIN", Label: "登录", LabelEN: "Login"},
	{Code: 2, Constant: "LOGIN_FAILED", Label: "登录失败", LabelEN: "Login failed"},
	{Code: 3, Constant: "LOGOUT", Label: "登出", LabelEN: "Logout"},
	{Code: 4, Constant: "CREATE_EQUIPMENT", Label: "创建设备", LabelEN: "Create equipment"},
	{Code: 5, Constant: "UPDATE_EQUIPMENT", Label: "更新设备", LabelEN: "Update equipment"},
	{Code: 6, Constant: "DELETE_EQUIPMENT", Label: "删除设备", LabelEN: "Delete equipment"},
	{Code: 7, Constant: "CREATE_LAB", Label: "创建实验室", LabelEN: "Create laboratory"},
	{Code: 8, Constant: "UPDATE_LAB", Label: "更新实验室", LabelEN: "Update laboratory"},
	{Code: 9, Constant: "DELETE_LAB", Label: "删除实验室", LabelEN: "Delete laboratory"},
	{Code: 10, Constant: "CREATE_RESERVATION", Label: "创建预约", LabelEN: "Create reservation"},
	{Code: 11, Constant: "APPROVE_RESERVATION", Label: "审批通过", LabelEN: "Approve reservation"},
	{Code: 12, Constant: "REJECT_RESERVATION", Label: "审批拒绝", LabelEN: "Reject reservation"},
	{Code: 13, Constant: "CANCEL_RESERVATION", Label: "取消预约", LabelEN: "Cancel reservation"},
	{Code: 14, Constant: "CREATE_TIMESLOT", Label: "创建时间段", LabelEN: "Create timeslot"},
	{Code: 15, Constant: "UPDATE_TIMESLOT", Label: "更新时间段", LabelEN: "Update timeslot"},
	{Code: 16, Constant: "DELETE_TIMESLOT", Label: "删除时间段", LabelEN: "Delete timeslot"},
	{Code: 17, Constant: "CREATE_USER", Label: "创建用户", LabelEN: "Create user"},
	{Code: 18, Constant: "UPDATE_USER", Label: "更新用户", LabelEN: "Update user"},
	{Code: 19, Constant: "DELETE_USER", Label: "删除用户", LabelEN: "Delete user"},
}

// ActionTypeByCode looks up a row by numeric code
func ActionTypeByCode(code int) (ActionType, bool) {
	for _, at := range ActionTypes {
		if at.Code == code {
			return at, true
		}
	}
	return ActionType{}, false
}

// ActionTypeByConstant looks up a row by backend constant (e.g. "APPROVE_RESERVATION")
func ActionTypeByConstant(constant string) (ActionType, bool) {
	for _, at := range ActionTypes {
		if at.Constant == constant {
			return at, true
		}
	}
	return ActionType{}, false
}

// ActionLabel renders a backend constant for display, falling back to the constant itself
func ActionLabel(constant string) string {
	if at, ok := ActionTypeByConstant(constant); ok {
		return at.Label
	}
	return constant
}
