package v1alpha1

import (
	"net/http"

	"github.com/peeringlatam/network-planner/api/v1alpha1"
	"github.com/peeringlatam/network-planner/pkg/version"
)

// (GET /api/v1/info)
func (h *ServiceHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	respond(w, r, http.StatusOK, v1alpha1.Info{
		GitCommit:   versionInfo.GitCommit,
		VersionName: versionInfo.GitVersion,
	})
}
