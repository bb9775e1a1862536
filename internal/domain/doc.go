// Package domain contains the persisted business entities of the service:
// registered users and the element profile stored for each of them.
// The chart engine itself lives in the bazi subpackage and knows nothing
// about users or storage.
package domain
