package api

// Login exchanges credentials for a token
func Login(input LoginInput) Request {
	return endpoint(EndpointLogin).Request().WithBody(input)
}

// Health checks that the backend is up
func Health() Request {
	return endpoint(EndpointHealth).Request()
}
