package domain

// KeyPrefix namespaces every Redis key written by this service.
var KeyPrefix = "recruit:"
