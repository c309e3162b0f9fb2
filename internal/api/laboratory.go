package api

// ListLaboratories lists all laboratories
func ListLaboratories() Request {
	return endpoint(EndpointLaboratoryList).Request()
}

// CreateLaboratory creates a laboratory (admin)
func CreateLaboratory(input LaboratoryInput) Request {
	return endpoint(EndpointLaboratoryCreate).Request().WithBody(input)
}

// UpdateLaboratory updates a laboratory (admin)
func UpdateLaboratory(id int64, input LaboratoryInput) Request {
	return endpoint(EndpointLaboratoryUpdate).Request(id).WithBody(input)
}

// DeleteLaboratory deletes a laboratory (admin)
func DeleteLaboratory(id int64) Request {
	return endpoint(EndpointLaboratoryDelete).Request(id)
}
