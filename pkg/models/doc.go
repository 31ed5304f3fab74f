// Package models holds the static myFT relationship table and the shapes of
// notification collections.
package models
