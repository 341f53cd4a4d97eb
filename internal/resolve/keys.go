package resolve

// Option keys understood by hatch. Keys are dot-namespaced and matched
// exactly; the same names appear in config files, on the command line and in
// the session cache.
const (
	KeyAuthor      = "defaults.author"
	KeyEmail       = "defaults.email"
	KeyLicense     = "defaults.license"
	KeyGitEnable   = "git.enable"
	KeyGitInit     = "git.init"
	KeyRepoCreate  = "repo.create"
	KeyRepoPrivate = "repo.private"
	KeyGithubUser  = "github.user"
	KeyGithubToken = "github.token"
	KeyModule      = "project.module"
	KeyDescription = "project.description"
)
