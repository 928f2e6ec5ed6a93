// Package remote builds request URLs for the two chart services used when the
// local backend is unavailable, and loads those URLs the way an image element
// would: a 2xx image response is a load event, anything else an error event.
package remote
