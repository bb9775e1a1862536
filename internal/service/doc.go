// Package service holds the application use cases: registering and
// authenticating users, computing charts, and managing the element profile
// each user keeps. Services depend on the store interfaces, never on a
// concrete database.
package service
