package services

import (
	"testing"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequestCreatesPendingEdge(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, err := f.friendshipService.SendRequest(bob.ID, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, models.FriendshipPending, edge.Status)
	assert.Equal(t, bob.ID, edge.RequestedByID)
	// The pair is stored canonically, smaller ID first.
	assert.Equal(t, alice.ID, edge.UserAID)
	assert.Equal(t, bob.ID, edge.UserBID)
	assert.Equal(t, alice.ID, edge.AddresseeID())
}

func TestSendRequestToSelf(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	_, err := f.friendshipService.SendRequest(alice.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfFriendRequest)
}

func TestSendRequestToUnknownUser(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	_, err := f.friendshipService.SendRequest(alice.ID, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSendRequestDuplicate(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	_, err := f.friendshipService.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = f.friendshipService.SendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendshipExists)

	// The reverse direction hits the same canonical pair.
	_, err = f.friendshipService.SendRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendshipExists)
}

func TestSendRequestBlockedByAcceptedEdge(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	f.makeFriends(t, alice.ID, bob.ID)

	_, err := f.friendshipService.SendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendshipExists)
}

func TestAcceptByAddressee(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, err := f.friendshipService.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	accepted, err := f.friendshipService.Accept(edge.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipAccepted, accepted.Status)

	status, err := f.friendshipService.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, models.FriendshipAccepted, status.Status)
}

func TestAcceptByRequesterRejected(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, err := f.friendshipService.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// The requester cannot accept their own request.
	_, err = f.friendshipService.Accept(edge.ID, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendRequestNotFound)

	// Neither can an unrelated third party.
	carol := f.createUser(t, "carol")
	_, err = f.friendshipService.Accept(edge.ID, carol.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendRequestNotFound)
}

func TestDeclineDeletesEdgeAndAllowsReRequest(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, err := f.friendshipService.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, f.friendshipService.Decline(edge.ID, bob.ID))

	status, err := f.friendshipService.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, status)

	// Either side may request again after a decline.
	_, err = f.friendshipService.SendRequest(bob.ID, alice.ID)
	assert.NoError(t, err)
}

func TestCancelByRequester(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	edge, err := f.friendshipService.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// The addressee cannot cancel, only decline.
	err = f.friendshipService.Cancel(edge.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendRequestNotFound)

	require.NoError(t, f.friendshipService.Cancel(edge.ID, alice.ID))

	status, err := f.friendshipService.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestRemoveFriend(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	f.makeFriends(t, alice.ID, bob.ID)

	require.NoError(t, f.friendshipService.Remove(bob.ID, alice.ID))

	status, err := f.friendshipService.Status(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestRemovePendingEdgeRejected(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	_, err := f.friendshipService.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// Remove only applies to accepted edges.
	err = f.friendshipService.Remove(alice.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrFriendshipNotFound)
}

func TestFriendsListing(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")
	f.makeFriends(t, alice.ID, bob.ID)
	f.makeFriends(t, alice.ID, carol.ID)

	friends, err := f.friendshipService.Friends(alice.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)

	names := []string{friends[0].Name, friends[1].Name}
	assert.Contains(t, names, "bob")
	assert.Contains(t, names, "carol")
}

func TestPendingRequestsSplit(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	_, err := f.friendshipService.SendRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	_, err = f.friendshipService.SendRequest(alice.ID, carol.ID)
	require.NoError(t, err)

	incoming, outgoing, err := f.friendshipService.PendingRequests(alice.ID)
	require.NoError(t, err)

	require.Len(t, incoming, 1)
	assert.Equal(t, bob.ID, incoming[0].RequestedByID)
	require.Len(t, outgoing, 1)
	assert.Equal(t, alice.ID, outgoing[0].RequestedByID)
}
