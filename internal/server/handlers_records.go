package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jmilbury/agentpress/apimodels"
	"github.com/jmilbury/agentpress/internal/models"
	"github.com/jmilbury/agentpress/internal/store"
)

func parseID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}

func (s *Server) handleOrganizationCreate(w http.ResponseWriter, r *http.Request) {
	var org models.Organization
	if err := json.NewDecoder(r.Body).Decode(&org); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if org.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err := s.store.Organizations.Create(&org); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, org)
}

func (s *Server) handleOrganizationList(w http.ResponseWriter, r *http.Request) {
	orgs, err := s.store.Organizations.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, orgs)
}

func (s *Server) handleOrganizationGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	org, err := s.store.Organizations.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (s *Server) handleOrganizationUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	org, err := s.store.Organizations.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	// Decoding over the fetched record gives partial-update semantics:
	// fields absent from the payload keep their stored values.
	if err := json.NewDecoder(r.Body).Decode(org); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	org.ID = id
	if err := s.store.Organizations.Update(org); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (s *Server) handleOrganizationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.Organizations.Delete(id); err != nil {
		respondLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apimodels.MessageResponse{Message: "organization deleted successfully"})
}

func (s *Server) handleUserRegister(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if user.Username == "" || user.Email == "" {
		writeError(w, http.StatusBadRequest, "username and email are required")
		return
	}
	if err := s.store.Users.Create(&user); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.Users.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	user, err := s.store.Users.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	user, err := s.store.Users.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(user); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user.ID = id
	if err := s.store.Users.Update(user); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.Users.Delete(id); err != nil {
		respondLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apimodels.MessageResponse{Message: "user deleted successfully"})
}

func (s *Server) handleInstanceCreate(w http.ResponseWriter, r *http.Request) {
	var instance models.AgentInstance
	if err := json.NewDecoder(r.Body).Decode(&instance); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if instance.Name == "" {
		writeError(w, http.StatusBadRequest, "agent_instance_name is required")
		return
	}
	if err := s.store.Instances.Create(&instance); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, instance)
}

func (s *Server) handleInstanceList(w http.ResponseWriter, r *http.Request) {
	instances, err := s.store.Instances.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, instances)
}

func (s *Server) handleInstanceGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	instance, err := s.store.Instances.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, instance)
}

func (s *Server) handleInstanceUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	instance, err := s.store.Instances.Get(id)
	if err != nil {
		respondLookupError(w, err)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(instance); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	instance.ID = id
	if err := s.store.Instances.Update(instance); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, instance)
}

func (s *Server) handleInstanceDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.store.Instances.Delete(id); err != nil {
		respondLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, apimodels.MessageResponse{Message: "agent instance deleted successfully"})
}

func respondLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
