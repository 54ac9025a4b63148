package auth

// TokenInstructions explains how to obtain a Slack user token with the
// search scope. Shown by the auth login command.
const TokenInstructions = `To aggregate emoji usage you need a Slack user token with the
search:read scope. Bot tokens cannot call search.messages.

1. Open https://api.slack.com/apps and create an app (or pick an
   existing one) in your workspace.
2. Under "OAuth & Permissions", add these User Token Scopes:
     - search:read
     - emoji:read
     - team:read
3. Install the app to your workspace and approve the scopes.
4. Copy the "User OAuth Token" (it starts with xoxp-).

The token grants read access to everything your user can see.
Store it here rather than in shell history or scripts.`
