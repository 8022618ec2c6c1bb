// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

// CanView reports whether the session identity may see or act on the
// account of targetUsername. Only the user themselves may.
func CanView(identity, targetUsername string) bool {
	return identity != "" && identity == targetUsername
}

// CanMutateFeedback reports whether the session identity may create, edit
// or delete feedback owned by feedbackOwner.
func CanMutateFeedback(identity, feedbackOwner string) bool {
	return identity != "" && identity == feedbackOwner
}
