package api

// GetStatistics fetches platform-wide statistics (admin)
func GetStatistics() Request {
	return endpoint(EndpointStatistics).Request()
}
