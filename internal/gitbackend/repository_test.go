package gitbackend_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/temirov/mirrorcheck/internal/gitbackend"
	"github.com/temirov/mirrorcheck/internal/scan"
)

const (
	testRemoteNameConstant        = "origin"
	testRemoteURLConstant         = "https://github.com/org/repo.git"
	testMasterBranchConstant      = "master"
	testMasterReferenceConstant   = "refs/heads/master"
	testTrackingReferenceConstant = "refs/remotes/origin/master"
)

// initializedRepository creates a checkout with two commits on master, an origin
// remote, tracking configuration for master, and the matching remote-tracking
// reference pointed at the first commit.
func initializedRepository(testInstance *testing.T) (string, *git.Repository, []plumbing.Hash) {
	repositoryDirectory := testInstance.TempDir()

	gitRepository, initError := git.PlainInit(repositoryDirectory, false)
	require.NoError(testInstance, initError)

	firstCommitHash := commitFile(testInstance, gitRepository, repositoryDirectory, "README.md", "hello\n")
	secondCommitHash := commitFile(testInstance, gitRepository, repositoryDirectory, "README.md", "hello again\n")

	_, remoteError := gitRepository.CreateRemote(&config.RemoteConfig{
		Name: testRemoteNameConstant,
		URLs: []string{testRemoteURLConstant},
	})
	require.NoError(testInstance, remoteError)

	repositoryConfiguration, configurationError := gitRepository.Config()
	require.NoError(testInstance, configurationError)
	repositoryConfiguration.Branches[testMasterBranchConstant] = &config.Branch{
		Name:   testMasterBranchConstant,
		Remote: testRemoteNameConstant,
		Merge:  plumbing.ReferenceName(testMasterReferenceConstant),
	}
	require.NoError(testInstance, gitRepository.SetConfig(repositoryConfiguration))

	trackingReference := plumbing.NewHashReference(plumbing.ReferenceName(testTrackingReferenceConstant), firstCommitHash)
	require.NoError(testInstance, gitRepository.Storer.SetReference(trackingReference))

	return repositoryDirectory, gitRepository, []plumbing.Hash{firstCommitHash, secondCommitHash}
}

func commitFile(testInstance *testing.T, gitRepository *git.Repository, repositoryDirectory string, fileName string, fileContent string) plumbing.Hash {
	worktree, worktreeError := gitRepository.Worktree()
	require.NoError(testInstance, worktreeError)

	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryDirectory, fileName), []byte(fileContent), 0o644))
	_, addError := worktree.Add(fileName)
	require.NoError(testInstance, addError)

	commitHash, commitError := worktree.Commit("update "+fileName, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Tester",
			Email: "tester@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(testInstance, commitError)
	return commitHash
}

func openScanRepository(testInstance *testing.T, repositoryDirectory string) scan.Repository {
	repository, openError := gitbackend.NewBackend().OpenRepository(repositoryDirectory)
	require.NoError(testInstance, openError)
	return repository
}

func TestRepositoryRemoteNames(testInstance *testing.T) {
	repositoryDirectory, gitRepository, _ := initializedRepository(testInstance)

	_, remoteError := gitRepository.CreateRemote(&config.RemoteConfig{
		Name: "backup",
		URLs: []string{"git@github.com:org/backup.git"},
	})
	require.NoError(testInstance, remoteError)

	repository := openScanRepository(testInstance, repositoryDirectory)
	remoteNames, listError := repository.RemoteNames()
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"backup", testRemoteNameConstant}, remoteNames)
}

func TestRepositoryRemoteLookup(testInstance *testing.T) {
	repositoryDirectory, _, _ := initializedRepository(testInstance)
	repository := openScanRepository(testInstance, repositoryDirectory)

	remoteHandle, lookupError := repository.Remote(testRemoteNameConstant)
	require.NoError(testInstance, lookupError)
	require.Equal(testInstance, testRemoteNameConstant, remoteHandle.Name())

	remoteURL, hasURL := remoteHandle.URL()
	require.True(testInstance, hasURL)
	require.Equal(testInstance, testRemoteURLConstant, remoteURL)

	_, missingError := repository.Remote("absent")
	require.ErrorIs(testInstance, missingError, scan.ErrRemoteNotFound)
}

func TestRepositoryLocalBranchesSorted(testInstance *testing.T) {
	repositoryDirectory, gitRepository, commitHashes := initializedRepository(testInstance)

	featureReference := plumbing.NewHashReference(plumbing.ReferenceName("refs/heads/feature"), commitHashes[0])
	require.NoError(testInstance, gitRepository.Storer.SetReference(featureReference))

	repository := openScanRepository(testInstance, repositoryDirectory)
	localBranches, listError := repository.LocalBranches()
	require.NoError(testInstance, listError)
	require.Len(testInstance, localBranches, 2)
	require.Equal(testInstance, "refs/heads/feature", localBranches[0].ReferenceName())
	require.Equal(testInstance, testMasterReferenceConstant, localBranches[1].ReferenceName())

	branchName, nameError := localBranches[0].Name()
	require.NoError(testInstance, nameError)
	require.Equal(testInstance, "feature", branchName)
}

func TestBranchUpstreamResolution(testInstance *testing.T) {
	repositoryDirectory, gitRepository, _ := initializedRepository(testInstance)

	featureHash := commitFile(testInstance, gitRepository, repositoryDirectory, "feature.md", "feature\n")
	featureReference := plumbing.NewHashReference(plumbing.ReferenceName("refs/heads/feature"), featureHash)
	require.NoError(testInstance, gitRepository.Storer.SetReference(featureReference))

	repository := openScanRepository(testInstance, repositoryDirectory)
	localBranches, listError := repository.LocalBranches()
	require.NoError(testInstance, listError)
	require.Len(testInstance, localBranches, 2)

	// feature has no tracking configuration.
	_, featureUpstreamError := localBranches[0].Upstream()
	require.ErrorIs(testInstance, featureUpstreamError, scan.ErrNoUpstream)

	// master tracks origin/master.
	masterUpstream, masterUpstreamError := localBranches[1].Upstream()
	require.NoError(testInstance, masterUpstreamError)
	require.Equal(testInstance, testTrackingReferenceConstant, masterUpstream.ReferenceName())
}

func TestBranchUpstreamMissingTrackingReference(testInstance *testing.T) {
	repositoryDirectory, gitRepository, _ := initializedRepository(testInstance)
	require.NoError(testInstance, gitRepository.Storer.RemoveReference(plumbing.ReferenceName(testTrackingReferenceConstant)))

	repository := openScanRepository(testInstance, repositoryDirectory)
	localBranches, listError := repository.LocalBranches()
	require.NoError(testInstance, listError)
	require.Len(testInstance, localBranches, 1)

	_, upstreamError := localBranches[0].Upstream()
	require.ErrorIs(testInstance, upstreamError, scan.ErrNoUpstream)
}

func TestRepositoryRemoteNameForReference(testInstance *testing.T) {
	repositoryDirectory, _, _ := initializedRepository(testInstance)
	repository := openScanRepository(testInstance, repositoryDirectory)

	remoteName, resolutionError := repository.RemoteNameForReference(testTrackingReferenceConstant)
	require.NoError(testInstance, resolutionError)
	require.Equal(testInstance, testRemoteNameConstant, remoteName)

	_, missingError := repository.RemoteNameForReference("refs/remotes/elsewhere/master")
	require.Error(testInstance, missingError)
}

func TestRepositoryResolveCommit(testInstance *testing.T) {
	repositoryDirectory, _, commitHashes := initializedRepository(testInstance)
	repository := openScanRepository(testInstance, repositoryDirectory)

	masterCommit, masterResolveError := repository.ResolveCommit(testMasterReferenceConstant)
	require.NoError(testInstance, masterResolveError)
	require.Equal(testInstance, scan.CommitIdentifier(commitHashes[1].String()), masterCommit)

	trackingCommit, trackingResolveError := repository.ResolveCommit(testTrackingReferenceConstant)
	require.NoError(testInstance, trackingResolveError)
	require.Equal(testInstance, scan.CommitIdentifier(commitHashes[0].String()), trackingCommit)

	_, missingError := repository.ResolveCommit("refs/heads/absent")
	require.Error(testInstance, missingError)
}

func TestRepositoryWalkAncestors(testInstance *testing.T) {
	repositoryDirectory, _, commitHashes := initializedRepository(testInstance)
	repository := openScanRepository(testInstance, repositoryDirectory)

	walkIterator, walkError := repository.WalkAncestors(scan.CommitIdentifier(commitHashes[1].String()))
	require.NoError(testInstance, walkError)
	defer walkIterator.Close()

	var visitedCommits []scan.CommitIdentifier
	for {
		nextCommit, nextError := walkIterator.Next()
		if nextError == io.EOF {
			break
		}
		require.NoError(testInstance, nextError)
		visitedCommits = append(visitedCommits, nextCommit)
	}

	require.Equal(testInstance, []scan.CommitIdentifier{
		scan.CommitIdentifier(commitHashes[1].String()),
		scan.CommitIdentifier(commitHashes[0].String()),
	}, visitedCommits)
}

func TestRepositoryWalkAncestorsFromFirstCommit(testInstance *testing.T) {
	repositoryDirectory, _, commitHashes := initializedRepository(testInstance)
	repository := openScanRepository(testInstance, repositoryDirectory)

	walkIterator, walkError := repository.WalkAncestors(scan.CommitIdentifier(commitHashes[0].String()))
	require.NoError(testInstance, walkError)
	defer walkIterator.Close()

	firstCommit, firstError := walkIterator.Next()
	require.NoError(testInstance, firstError)
	require.Equal(testInstance, scan.CommitIdentifier(commitHashes[0].String()), firstCommit)

	_, exhaustedError := walkIterator.Next()
	require.ErrorIs(testInstance, exhaustedError, io.EOF)
}

func TestAncestryResolverAgainstRealRepository(testInstance *testing.T) {
	repositoryDirectory, _, commitHashes := initializedRepository(testInstance)
	repository := openScanRepository(testInstance, repositoryDirectory)

	resolver := scan.NewAncestryResolver()

	firstInSecond, firstWalkError := resolver.IsAncestor(repository, scan.CommitIdentifier(commitHashes[0].String()), scan.CommitIdentifier(commitHashes[1].String()))
	require.NoError(testInstance, firstWalkError)
	require.True(testInstance, firstInSecond)

	secondInFirst, secondWalkError := resolver.IsAncestor(repository, scan.CommitIdentifier(commitHashes[1].String()), scan.CommitIdentifier(commitHashes[0].String()))
	require.NoError(testInstance, secondWalkError)
	require.False(testInstance, secondInFirst)
}
