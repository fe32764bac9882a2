package switcher

import (
	"github.com/MehguViewer/MehguViewer.Core-sub003/internal/entities"
)

// Plain delegation to the active backend. Each call reads the backend pointer
// once and runs against it even if a switch lands mid-operation.

func (s *Switcher) AddPage(p *entities.Page) error {
	return s.active().AddPage(p)
}

func (s *Switcher) GetPages(unitID string) ([]entities.Page, error) {
	return s.active().GetPages(unitID)
}

func (s *Switcher) UpsertProgress(p *entities.ReadingProgress) error {
	return s.active().UpsertProgress(p)
}

func (s *Switcher) GetProgress(userID, seriesID string) (*entities.ReadingProgress, error) {
	return s.active().GetProgress(userID, seriesID)
}

func (s *Switcher) ListProgress(userID string) ([]entities.ReadingProgress, error) {
	return s.active().ListProgress(userID)
}

func (s *Switcher) ListProgressHistory(userID string) ([]entities.ReadingProgress, error) {
	return s.active().ListProgressHistory(userID)
}

func (s *Switcher) CreateComment(c *entities.Comment) error {
	return s.active().CreateComment(c)
}

func (s *Switcher) GetComment(id string) (*entities.Comment, error) {
	return s.active().GetComment(id)
}

func (s *Switcher) ListComments(targetURN string) ([]entities.Comment, error) {
	return s.active().ListComments(targetURN)
}

func (s *Switcher) DeleteComment(id string) error {
	return s.active().DeleteComment(id)
}

func (s *Switcher) SetVote(v *entities.Vote) error {
	return s.active().SetVote(v)
}

func (s *Switcher) GetVote(userID, targetURN string) (*entities.Vote, error) {
	return s.active().GetVote(userID, targetURN)
}

func (s *Switcher) DeleteVote(userID, targetURN string) error {
	return s.active().DeleteVote(userID, targetURN)
}

func (s *Switcher) VoteScore(targetURN string) (int64, error) {
	return s.active().VoteScore(targetURN)
}

func (s *Switcher) CreateCollection(c *entities.Collection) error {
	return s.active().CreateCollection(c)
}

func (s *Switcher) UpdateCollection(c *entities.Collection) error {
	return s.active().UpdateCollection(c)
}

func (s *Switcher) GetCollection(id string) (*entities.Collection, error) {
	return s.active().GetCollection(id)
}

func (s *Switcher) ListCollections(userID string) ([]entities.Collection, error) {
	return s.active().ListCollections(userID)
}

func (s *Switcher) DeleteCollection(id string) error {
	return s.active().DeleteCollection(id)
}

func (s *Switcher) CreateReport(r *entities.Report) error {
	return s.active().CreateReport(r)
}

func (s *Switcher) UpdateReport(r *entities.Report) error {
	return s.active().UpdateReport(r)
}

func (s *Switcher) GetReport(id string) (*entities.Report, error) {
	return s.active().GetReport(id)
}

func (s *Switcher) ListReports(status entities.ReportStatus) ([]entities.Report, error) {
	return s.active().ListReports(status)
}

func (s *Switcher) DeleteReport(id string) error {
	return s.active().DeleteReport(id)
}

func (s *Switcher) CreateUser(u *entities.User) error {
	return s.active().CreateUser(u)
}

func (s *Switcher) UpdateUser(u *entities.User) error {
	return s.active().UpdateUser(u)
}

func (s *Switcher) GetUser(id string) (*entities.User, error) {
	return s.active().GetUser(id)
}

func (s *Switcher) GetUserByUsername(username string) (*entities.User, error) {
	return s.active().GetUserByUsername(username)
}

func (s *Switcher) ListUsers() ([]entities.User, error) {
	return s.active().ListUsers()
}

func (s *Switcher) DeleteUser(id string) error {
	return s.active().DeleteUser(id)
}

func (s *Switcher) IsAdminPresent() (bool, error) {
	return s.active().IsAdminPresent()
}

func (s *Switcher) CreatePasskey(p *entities.Passkey) error {
	return s.active().CreatePasskey(p)
}

func (s *Switcher) GetPasskeyByCredentialID(credentialID string) (*entities.Passkey, error) {
	return s.active().GetPasskeyByCredentialID(credentialID)
}

func (s *Switcher) ListPasskeys(userID string) ([]entities.Passkey, error) {
	return s.active().ListPasskeys(userID)
}

func (s *Switcher) DeletePasskey(id string) error {
	return s.active().DeletePasskey(id)
}

func (s *Switcher) HasEditGrant(targetURN, userURN string) (bool, error) {
	return s.active().HasEditGrant(targetURN, userURN)
}

func (s *Switcher) ListEditGrants(targetURN string) ([]entities.EditPermission, error) {
	return s.active().ListEditGrants(targetURN)
}

func (s *Switcher) ListGrantTargets() ([]string, error) {
	return s.active().ListGrantTargets()
}

func (s *Switcher) DeleteGrantsForTarget(targetURN string) error {
	return s.active().DeleteGrantsForTarget(targetURN)
}

func (s *Switcher) GetSystemConfig() (*entities.SystemConfig, error) {
	return s.active().GetSystemConfig()
}

func (s *Switcher) SetSystemConfig(c *entities.SystemConfig) error {
	return s.active().SetSystemConfig(c)
}

func (s *Switcher) GetNodeMetadata() (*entities.NodeMetadata, error) {
	return s.active().GetNodeMetadata()
}

func (s *Switcher) SetNodeMetadata(m *entities.NodeMetadata) error {
	return s.active().SetNodeMetadata(m)
}

func (s *Switcher) GetTaxonomy() (*entities.TaxonomyConfig, error) {
	return s.active().GetTaxonomy()
}

func (s *Switcher) SetTaxonomy(t *entities.TaxonomyConfig) error {
	return s.active().SetTaxonomy(t)
}
