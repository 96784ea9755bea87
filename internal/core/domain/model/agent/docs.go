// Package agent contains the Agent aggregate: the capacity-bounded designers
// and manufacturers that the assignment scheduler distributes work across.
package agent
