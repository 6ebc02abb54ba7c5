// Package cloud talks to the remote execution service: the session
// interface the backends consume, its HTTP implementation, the batch/job
// wire model and status enums, and the remote credential configuration.
//
// Authentication protocols are out of scope; the client only attaches the
// credentials it is given.
package cloud
