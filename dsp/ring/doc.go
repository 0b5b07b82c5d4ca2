// Package ring provides a fixed-capacity FIFO ring buffer for streaming
// scalar samples. It is a sequential building block: instances are not safe
// for concurrent use and callers needing concurrent producers or consumers
// must add their own synchronization around a single instance.
package ring
